package model

// Product carries a nullable base price: a NULL price means the product has
// never been priced and must never be quoted or repriced.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	BasePrice     *float64 `json:"base_price"`
	Status        string   `json:"status"`
	EffectiveFrom string   `json:"effective_from,omitempty"`
}
