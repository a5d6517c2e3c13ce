// Package api is the typed facade over the platform's REST endpoints. Every
// server operation the client can perform is declared once as a Binding
// (a stable name plus a fixed method and path template), grouped by domain.
// The set of operations is enumerable via Bindings, which the tests use to
// keep the facade honest.
package api

import (
	"context"
	"net/url"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

// Binding is a named, immutable description of one server operation.
type Binding struct {
	Name   string // Stable name, "group.operation", used in logs and tests
	Method string
	Path   string // Template with {param} placeholders, relative to the base URL
}

// Client hands each domain group a shared transport.
type Client struct {
	t *transport.Client
}

// New creates a facade over t.
func New(t *transport.Client) *Client {
	return &Client{t: t}
}

func (c *Client) Auth() *AuthGroup             { return &AuthGroup{t: c.t} }
func (c *Client) Users() *UsersGroup           { return &UsersGroup{t: c.t} }
func (c *Client) Customers() *CustomersGroup   { return &CustomersGroup{t: c.t} }
func (c *Client) Loyalty() *LoyaltyGroup       { return &LoyaltyGroup{t: c.t} }
func (c *Client) Rewards() *RewardsGroup       { return &RewardsGroup{t: c.t} }
func (c *Client) Tiers() *TiersGroup           { return &TiersGroup{t: c.t} }
func (c *Client) Affiliates() *AffiliatesGroup { return &AffiliatesGroup{t: c.t} }
func (c *Client) WhatsApp() *WhatsAppGroup     { return &WhatsAppGroup{t: c.t} }
func (c *Client) Analytics() *AnalyticsGroup   { return &AnalyticsGroup{t: c.t} }
func (c *Client) ERP() *ERPGroup               { return &ERPGroup{t: c.t} }
func (c *Client) Health() *HealthGroup         { return &HealthGroup{t: c.t} }

// Bindings returns every declared operation. The slice is a copy.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}

var bindings = concat(
	authBindings,
	usersBindings,
	customersBindings,
	loyaltyBindings,
	rewardsBindings,
	tiersBindings,
	affiliatesBindings,
	whatsappBindings,
	analyticsBindings,
	erpBindings,
	healthBindings,
)

func concat(groups ...[]Binding) []Binding {
	var all []Binding
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// call performs one bound operation and decodes the 2xx body into T.
func call[T any](ctx context.Context, t *transport.Client, b Binding, params map[string]string, query url.Values, body any) (T, error) {
	var out T
	resp, err := t.Do(ctx, &transport.Request{
		Name:       b.Name,
		Method:     b.Method,
		Path:       b.Path,
		PathParams: params,
		Query:      query,
		Body:       body,
	})
	if err != nil {
		return out, err
	}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
