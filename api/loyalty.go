package api

import (
	"context"
	"strconv"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingLoyaltyPointsBalance = Binding{Name: "loyalty.points_balance", Method: "GET", Path: "/loyalty/points/{customer_id}"}
	bindingLoyaltyTransactions  = Binding{Name: "loyalty.transactions", Method: "GET", Path: "/loyalty/transactions/{customer_id}"}
	bindingLoyaltyAward         = Binding{Name: "loyalty.award", Method: "POST", Path: "/loyalty/points/award"}
	bindingLoyaltyDeduct        = Binding{Name: "loyalty.deduct", Method: "POST", Path: "/loyalty/points/deduct"}
)

var loyaltyBindings = []Binding{
	bindingLoyaltyPointsBalance,
	bindingLoyaltyTransactions,
	bindingLoyaltyAward,
	bindingLoyaltyDeduct,
}

// LoyaltyGroup covers the /loyalty endpoints.
type LoyaltyGroup struct {
	t *transport.Client
}

// PointsBalance is a customer's current standing.
type PointsBalance struct {
	CustomerID int64  `json:"customer_id"`
	Points     int    `json:"points"`
	Tier       string `json:"tier,omitempty"`
}

// PointTransaction is one entry in a customer's point ledger.
type PointTransaction struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"` // "earned" or "redeemed"
	Points      int    `json:"points"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// TransactionHistory is the ledger envelope.
type TransactionHistory struct {
	CustomerID   int64              `json:"customer_id"`
	Transactions []PointTransaction `json:"transactions"`
}

// PointsAdjustment awards or deducts points.
type PointsAdjustment struct {
	CustomerID int64  `json:"customer_id"`
	Points     int    `json:"points"`
	Reason     string `json:"reason,omitempty"`
}

// PointsBalance returns the customer's balance.
func (g *LoyaltyGroup) PointsBalance(ctx context.Context, customerID int64) (PointsBalance, error) {
	return call[PointsBalance](ctx, g.t, bindingLoyaltyPointsBalance, customerParam(customerID), nil, nil)
}

// Transactions returns the customer's point ledger.
func (g *LoyaltyGroup) Transactions(ctx context.Context, customerID int64) (TransactionHistory, error) {
	return call[TransactionHistory](ctx, g.t, bindingLoyaltyTransactions, customerParam(customerID), nil, nil)
}

// Award adds points to a customer.
func (g *LoyaltyGroup) Award(ctx context.Context, adj PointsAdjustment) (PointsBalance, error) {
	return call[PointsBalance](ctx, g.t, bindingLoyaltyAward, nil, nil, adj)
}

// Deduct removes points from a customer.
func (g *LoyaltyGroup) Deduct(ctx context.Context, adj PointsAdjustment) (PointsBalance, error) {
	return call[PointsBalance](ctx, g.t, bindingLoyaltyDeduct, nil, nil, adj)
}

func customerParam(customerID int64) map[string]string {
	return map[string]string{"customer_id": strconv.FormatInt(customerID, 10)}
}
