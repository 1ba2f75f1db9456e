package request

// ReconcileRequest is the per-check payload submitted by the scraping agent.
// SellableQuantity and ExpertPrice are optional; the check can be retried
// with them filled in when the first pass reports divergence.
type ReconcileRequest struct {
	FundName         string   `json:"fund_name"`
	NavOnPage        *float64 `json:"nav_on_page"`
	TotalUnits       *float64 `json:"total_units"`
	SellableQuantity *float64 `json:"sellable_quantity"`
	ExpertPrice      *float64 `json:"expert_price"`
}
