package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/navassist/nav-reconciler/internal/model"
)

// Evaluate applies the reconciliation decision rule. Pure, no I/O.
//
// diff = |nav - board|. A diff strictly below the tolerance is OK; a diff
// equal to the tolerance is already divergence. When divergence is confirmed
// but the sellable quantity or expert price is missing (or the quantity is
// zero, which would make the correction formula divide by zero), the caller
// must resupply data before a correction can be computed. Otherwise:
//
//	fraction = totalUnits * diff / sellableQuantity
//	suggested = expertPrice + fraction  (nav above board)
//	suggested = expertPrice - fraction  (nav below board)
func Evaluate(in model.ReconcileInput, boardPrice, tolerance float64) model.Decision {
	diff := math.Abs(in.NavOnPage - boardPrice)

	decision := model.Decision{
		Diff:       diff,
		Tolerance:  tolerance,
		BoardPrice: boardPrice,
	}

	if diff < tolerance {
		decision.Outcome = model.OutcomeOK
		return decision
	}

	if in.SellableQuantity == nil || in.ExpertPrice == nil || *in.SellableQuantity == 0 {
		decision.Outcome = model.OutcomeMoreDataRequired
		return decision
	}

	fraction := (in.TotalUnits * diff) / *in.SellableQuantity

	var suggested float64
	if in.NavOnPage > boardPrice {
		suggested = *in.ExpertPrice + fraction
	} else {
		suggested = *in.ExpertPrice - fraction
	}

	decision.Outcome = model.OutcomeAdjustmentNeeded
	decision.SuggestedPrice = suggested
	decision.SuggestedDisplay = roundDisplay(suggested)

	return decision
}

// roundDisplay rounds to two decimals, half away from zero.
func roundDisplay(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
