package api

import (
	"context"
	"strconv"

	"github.com/ashidadhich33-source/MY-erp-sub000/transport"
)

var (
	bindingRewardsList      = Binding{Name: "rewards.list", Method: "GET", Path: "/rewards"}
	bindingRewardsAvailable = Binding{Name: "rewards.available", Method: "GET", Path: "/rewards/available/{customer_id}"}
	bindingRewardsRedeem    = Binding{Name: "rewards.redeem", Method: "POST", Path: "/rewards/redeem"}
	bindingRewardsFulfill   = Binding{Name: "rewards.fulfill", Method: "POST", Path: "/rewards/redeem/{redemption_id}/fulfill"}
	bindingRewardsCancel    = Binding{Name: "rewards.cancel", Method: "POST", Path: "/rewards/redeem/{redemption_id}/cancel"}
	bindingRewardsHistory   = Binding{Name: "rewards.history", Method: "GET", Path: "/rewards/history/{customer_id}"}
)

var rewardsBindings = []Binding{
	bindingRewardsList,
	bindingRewardsAvailable,
	bindingRewardsRedeem,
	bindingRewardsFulfill,
	bindingRewardsCancel,
	bindingRewardsHistory,
}

// RewardsGroup covers the /rewards endpoints.
type RewardsGroup struct {
	t *transport.Client
}

// Reward is a redeemable catalogue entry.
type Reward struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PointsCost  int    `json:"points_cost"`
	IsActive    bool   `json:"is_active"`
}

// Redemption is a customer's claim on a reward.
type Redemption struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	RewardID   int64  `json:"reward_id"`
	Status     string `json:"status"` // "pending", "fulfilled", "cancelled"
	CreatedAt  string `json:"created_at,omitempty"`
}

// RedemptionHistory is the per-customer redemption envelope.
type RedemptionHistory struct {
	CustomerID  int64        `json:"customer_id"`
	Redemptions []Redemption `json:"redemptions"`
}

type redeemRequest struct {
	CustomerID int64 `json:"customer_id"`
	RewardID   int64 `json:"reward_id"`
}

// List returns the full reward catalogue.
func (g *RewardsGroup) List(ctx context.Context) ([]Reward, error) {
	return call[[]Reward](ctx, g.t, bindingRewardsList, nil, nil, nil)
}

// Available returns the rewards the customer has enough points for.
func (g *RewardsGroup) Available(ctx context.Context, customerID int64) ([]Reward, error) {
	return call[[]Reward](ctx, g.t, bindingRewardsAvailable, customerParam(customerID), nil, nil)
}

// Redeem claims a reward for a customer.
func (g *RewardsGroup) Redeem(ctx context.Context, customerID, rewardID int64) (Redemption, error) {
	return call[Redemption](ctx, g.t, bindingRewardsRedeem, nil, nil, redeemRequest{CustomerID: customerID, RewardID: rewardID})
}

// Fulfill marks a pending redemption as delivered.
func (g *RewardsGroup) Fulfill(ctx context.Context, redemptionID int64) (Redemption, error) {
	return call[Redemption](ctx, g.t, bindingRewardsFulfill, redemptionParam(redemptionID), nil, nil)
}

// Cancel voids a pending redemption and returns the points.
func (g *RewardsGroup) Cancel(ctx context.Context, redemptionID int64) (Redemption, error) {
	return call[Redemption](ctx, g.t, bindingRewardsCancel, redemptionParam(redemptionID), nil, nil)
}

// History returns a customer's redemptions.
func (g *RewardsGroup) History(ctx context.Context, customerID int64) (RedemptionHistory, error) {
	return call[RedemptionHistory](ctx, g.t, bindingRewardsHistory, customerParam(customerID), nil, nil)
}

func redemptionParam(redemptionID int64) map[string]string {
	return map[string]string{"redemption_id": strconv.FormatInt(redemptionID, 10)}
}
