package model

// Activity types written by this service.
const (
	ActivityQuoteGenerated  = "QuoteGenerated"
	ActivityPolicyPurchased = "PolicyPurchased"
	ActivityPricingUpdated  = "PricingUpdatedByPredictiveModel"
)

// Activity is an append-only audit record. Rows are never updated or deleted.
type Activity struct {
	ID           int64  `json:"id"`
	PolicyID     int64  `json:"policy_id"`
	CustomerID   int64  `json:"customer_id"`
	ActivityType string `json:"activity_type"`
	Timestamp    int64  `json:"activity_timestamp"`
	Notes        string `json:"notes"`
}
