package model

import "time"

// StatusAdjustmentNeeded is the status label persisted with every
// reconciliation that produced a corrective suggestion.
const StatusAdjustmentNeeded = "Adjustment Needed"

// ReconciliationLog is an immutable audit record of one reconciliation that
// resulted in an adjustment. Rows are append-only; the core never updates
// or deletes them.
type ReconciliationLog struct {
	ID               string    `json:"id"`
	FundID           string    `json:"fund_id"`
	FundName         string    `json:"fund_name,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	NavOnPage        float64   `json:"nav_on_page"`
	TotalUnits       float64   `json:"total_units"`
	SellableQuantity float64   `json:"sellable_quantity"`
	ExpertPrice      float64   `json:"expert_price"`
	BoardPrice       float64   `json:"board_price"`
	SuggestedPrice   float64   `json:"suggested_price"`
	Status           string    `json:"status"`
}
