package api

import (
	"context"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingTiersList     = Binding{Name: "tiers.list", Method: "GET", Path: "/tiers"}
	bindingTiersBenefits = Binding{Name: "tiers.benefits", Method: "GET", Path: "/tiers/benefits"}
	bindingTiersCustomer = Binding{Name: "tiers.customer", Method: "GET", Path: "/tiers/customer/{customer_id}"}
	bindingTiersUpgrade  = Binding{Name: "tiers.upgrade", Method: "POST", Path: "/tiers/upgrade"}
)

var tiersBindings = []Binding{
	bindingTiersList,
	bindingTiersBenefits,
	bindingTiersCustomer,
	bindingTiersUpgrade,
}

// TiersGroup covers the /tiers endpoints.
type TiersGroup struct {
	t *transport.Client
}

// Tier is a loyalty level.
type Tier struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
	MaxPoints int    `json:"max_points,omitempty"`
}

// TierBenefit is a perk attached to a tier.
type TierBenefit struct {
	Tier        string `json:"tier"`
	Description string `json:"description"`
}

// CustomerTier is a customer's current level and progress.
type CustomerTier struct {
	CustomerID   int64  `json:"customer_id"`
	Tier         string `json:"tier"`
	Points       int    `json:"points"`
	NextTier     string `json:"next_tier,omitempty"`
	PointsToNext int    `json:"points_to_next,omitempty"`
}

type tierUpgradeRequest struct {
	CustomerID int64  `json:"customer_id"`
	Tier       string `json:"tier"`
}

// List returns all tiers.
func (g *TiersGroup) List(ctx context.Context) ([]Tier, error) {
	return call[[]Tier](ctx, g.t, bindingTiersList, nil, nil, nil)
}

// Benefits returns every tier's perks.
func (g *TiersGroup) Benefits(ctx context.Context) ([]TierBenefit, error) {
	return call[[]TierBenefit](ctx, g.t, bindingTiersBenefits, nil, nil, nil)
}

// Customer returns one customer's tier standing.
func (g *TiersGroup) Customer(ctx context.Context, customerID int64) (CustomerTier, error) {
	return call[CustomerTier](ctx, g.t, bindingTiersCustomer, customerParam(customerID), nil, nil)
}

// Upgrade manually moves a customer to a tier. Admin only.
func (g *TiersGroup) Upgrade(ctx context.Context, customerID int64, tier string) (CustomerTier, error) {
	return call[CustomerTier](ctx, g.t, bindingTiersUpgrade, nil, nil, tierUpgradeRequest{CustomerID: customerID, Tier: tier})
}
