package model

// ReconcileOutcome is the decision of one NAV check.
type ReconcileOutcome string

const (
	// OutcomeOK means the divergence is inside the tolerance band.
	OutcomeOK ReconcileOutcome = "ok"

	// OutcomeMoreDataRequired means the divergence was confirmed but the
	// sellable quantity or expert price needed for the correction formula
	// is missing; the caller must resupply them.
	OutcomeMoreDataRequired ReconcileOutcome = "adjustment_needed_more_data_required"

	// OutcomeAdjustmentNeeded means a corrective price was computed.
	OutcomeAdjustmentNeeded ReconcileOutcome = "adjustment_needed"
)

// ReconcileInput is the ephemeral per-check payload. SellableQuantity and
// ExpertPrice are optional; nil means not supplied by the caller.
type ReconcileInput struct {
	FundName         string
	NavOnPage        float64
	TotalUnits       float64
	SellableQuantity *float64
	ExpertPrice      *float64
}

// Decision is the result of evaluating one reconciliation.
// SuggestedPrice is the unrounded correction; SuggestedDisplay is the same
// value rounded to two decimals for presentation. Both are zero unless
// Outcome is OutcomeAdjustmentNeeded.
type Decision struct {
	Outcome          ReconcileOutcome
	Diff             float64
	Tolerance        float64
	BoardPrice       float64
	SuggestedPrice   float64
	SuggestedDisplay float64
}
