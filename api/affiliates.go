package api

import (
	"context"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingAffiliatesList        = Binding{Name: "affiliates.list", Method: "GET", Path: "/affiliates"}
	bindingAffiliatesRegister    = Binding{Name: "affiliates.register", Method: "POST", Path: "/affiliates/register"}
	bindingAffiliatesDashboard   = Binding{Name: "affiliates.dashboard", Method: "GET", Path: "/affiliates/{id}/dashboard"}
	bindingAffiliatesCommissions = Binding{Name: "affiliates.commissions", Method: "GET", Path: "/affiliates/{id}/commissions"}
)

var affiliatesBindings = []Binding{
	bindingAffiliatesList,
	bindingAffiliatesRegister,
	bindingAffiliatesDashboard,
	bindingAffiliatesCommissions,
}

// AffiliatesGroup covers the /affiliates endpoints.
type AffiliatesGroup struct {
	t *transport.Client
}

// Affiliate is a referral partner.
type Affiliate struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ReferralCode string `json:"referral_code,omitempty"`
	Status       string `json:"status,omitempty"`
}

// AffiliateInput registers a new affiliate.
type AffiliateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// AffiliateDashboard is the per-affiliate summary.
type AffiliateDashboard struct {
	AffiliateID       int64   `json:"affiliate_id"`
	TotalReferrals    int     `json:"total_referrals"`
	ActiveReferrals   int     `json:"active_referrals"`
	PendingCommission float64 `json:"pending_commission"`
	PaidCommission    float64 `json:"paid_commission"`
}

// Commission is one earned payout line.
type Commission struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // "pending" or "paid"
	CreatedAt string  `json:"created_at,omitempty"`
}

// List returns all affiliates.
func (g *AffiliatesGroup) List(ctx context.Context) ([]Affiliate, error) {
	return call[[]Affiliate](ctx, g.t, bindingAffiliatesList, nil, nil, nil)
}

// Register creates an affiliate.
func (g *AffiliatesGroup) Register(ctx context.Context, input AffiliateInput) (Affiliate, error) {
	return call[Affiliate](ctx, g.t, bindingAffiliatesRegister, nil, nil, input)
}

// Dashboard returns an affiliate's summary numbers.
func (g *AffiliatesGroup) Dashboard(ctx context.Context, id int64) (AffiliateDashboard, error) {
	return call[AffiliateDashboard](ctx, g.t, bindingAffiliatesDashboard, pathID(id), nil, nil)
}

// Commissions returns an affiliate's payout lines.
func (g *AffiliatesGroup) Commissions(ctx context.Context, id int64) ([]Commission, error) {
	return call[[]Commission](ctx, g.t, bindingAffiliatesCommissions, pathID(id), nil, nil)
}
