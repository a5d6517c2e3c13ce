package api

import (
	"context"
	"net/url"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingAnalyticsKPI       = Binding{Name: "analytics.kpi", Method: "GET", Path: "/analytics/kpi"}
	bindingAnalyticsTrends    = Binding{Name: "analytics.trends", Method: "GET", Path: "/analytics/trends"}
	bindingAnalyticsExport    = Binding{Name: "analytics.export", Method: "POST", Path: "/analytics/export"}
	bindingAnalyticsDashboard = Binding{Name: "analytics.dashboard", Method: "GET", Path: "/analytics/dashboard"}
	bindingAnalyticsCustomers = Binding{Name: "analytics.customers", Method: "GET", Path: "/analytics/customers"}
	bindingAnalyticsLoyalty   = Binding{Name: "analytics.loyalty", Method: "GET", Path: "/analytics/loyalty"}
)

var analyticsBindings = []Binding{
	bindingAnalyticsKPI,
	bindingAnalyticsTrends,
	bindingAnalyticsExport,
	bindingAnalyticsDashboard,
	bindingAnalyticsCustomers,
	bindingAnalyticsLoyalty,
}

// AnalyticsGroup covers the /analytics endpoints.
type AnalyticsGroup struct {
	t *transport.Client
}

// KPIReport is the headline number set.
type KPIReport struct {
	TotalCustomers        int     `json:"total_customers"`
	ActiveLoyaltyMembers  int     `json:"active_loyalty_members"`
	ActiveAffiliates      int     `json:"active_affiliates"`
	TotalWhatsAppMessages int     `json:"total_whatsapp_messages"`
	LoyaltyPointsIssued   int     `json:"loyalty_points_issued"`
	CommissionsPaid       float64 `json:"commissions_paid"`
}

// TrendPoint is one sample of a metric over time.
type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// TrendsReport groups trend series by metric name.
type TrendsReport struct {
	Metric string       `json:"metric"`
	Points []TrendPoint `json:"points"`
}

// ExportRequest asks the server to assemble a report for download.
type ExportRequest struct {
	Report string `json:"report"` // e.g. "kpi", "customers", "loyalty"
	Format string `json:"format"` // e.g. "csv", "xlsx"
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// ExportResult points at the assembled report.
type ExportResult struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CustomerAnalytics is the customer-base breakdown.
type CustomerAnalytics struct {
	NewCustomersThisMonth    int                `json:"new_customers_this_month"`
	CustomerRetentionRate    float64            `json:"customer_retention_rate"`
	AveragePointsPerCustomer float64            `json:"average_points_per_customer"`
	TierDistribution         map[string]float64 `json:"tier_distribution"`
}

// LoyaltyAnalytics is the program-performance breakdown.
type LoyaltyAnalytics struct {
	PointsIssued   int     `json:"points_issued"`
	PointsRedeemed int     `json:"points_redeemed"`
	RedemptionRate float64 `json:"redemption_rate"`
	ActiveMembers  int     `json:"active_members"`
}

// KPI returns the headline numbers.
func (g *AnalyticsGroup) KPI(ctx context.Context) (KPIReport, error) {
	return call[KPIReport](ctx, g.t, bindingAnalyticsKPI, nil, nil, nil)
}

// Trends returns a metric's series; metric selection rides the query string.
func (g *AnalyticsGroup) Trends(ctx context.Context, metric string) (TrendsReport, error) {
	q := url.Values{}
	if metric != "" {
		q.Set("metric", metric)
	}
	return call[TrendsReport](ctx, g.t, bindingAnalyticsTrends, nil, q, nil)
}

// Export kicks off a report export.
func (g *AnalyticsGroup) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	return call[ExportResult](ctx, g.t, bindingAnalyticsExport, nil, nil, req)
}

// Dashboard returns the landing-page metric set.
func (g *AnalyticsGroup) Dashboard(ctx context.Context) (KPIReport, error) {
	return call[KPIReport](ctx, g.t, bindingAnalyticsDashboard, nil, nil, nil)
}

// Customers returns the customer-base breakdown.
func (g *AnalyticsGroup) Customers(ctx context.Context) (CustomerAnalytics, error) {
	return call[CustomerAnalytics](ctx, g.t, bindingAnalyticsCustomers, nil, nil, nil)
}

// Loyalty returns the loyalty-program breakdown.
func (g *AnalyticsGroup) Loyalty(ctx context.Context) (LoyaltyAnalytics, error) {
	return call[LoyaltyAnalytics](ctx, g.t, bindingAnalyticsLoyalty, nil, nil, nil)
}
