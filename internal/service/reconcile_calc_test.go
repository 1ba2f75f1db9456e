package service_test

import (
	"math"
	"testing"

	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/service"
	"github.com/navassist/nav-reconciler/internal/testutil"
)

func TestEvaluate_WithinTolerance(t *testing.T) {
	t.Run("diff below tolerance is ok", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:   "Growth Fund",
			NavOnPage:  1000,
			TotalUnits: 5000000,
		}

		decision := service.Evaluate(in, 997, 4.0)

		if decision.Outcome != model.OutcomeOK {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeOK, decision.Outcome)
		}
		if decision.Diff != 3 {
			t.Errorf("Expected diff 3, got %f", decision.Diff)
		}
		if decision.SuggestedPrice != 0 {
			t.Errorf("Expected no suggested price for ok outcome, got %f", decision.SuggestedPrice)
		}
	})

	t.Run("diff equal to tolerance is already divergence", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:   "Growth Fund",
			NavOnPage:  1000,
			TotalUnits: 5000000,
		}

		decision := service.Evaluate(in, 996, 4.0)

		if decision.Outcome == model.OutcomeOK {
			t.Error("Expected divergence when diff equals tolerance, got ok")
		}
		if decision.Outcome != model.OutcomeMoreDataRequired {
			t.Errorf("Expected outcome %q without formula inputs, got %q",
				model.OutcomeMoreDataRequired, decision.Outcome)
		}
	})

	t.Run("board above nav uses absolute diff", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:   "Growth Fund",
			NavOnPage:  990,
			TotalUnits: 5000000,
		}

		decision := service.Evaluate(in, 992, 4.0)

		if decision.Outcome != model.OutcomeOK {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeOK, decision.Outcome)
		}
		if decision.Diff != 2 {
			t.Errorf("Expected diff 2, got %f", decision.Diff)
		}
	})
}

func TestEvaluate_MoreDataRequired(t *testing.T) {
	t.Run("missing sellable quantity", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:    "Growth Fund",
			NavOnPage:   1000,
			TotalUnits:  5000000,
			ExpertPrice: testutil.FloatPtr(985),
		}

		decision := service.Evaluate(in, 990, 4.0)

		if decision.Outcome != model.OutcomeMoreDataRequired {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeMoreDataRequired, decision.Outcome)
		}
	})

	t.Run("missing expert price", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:         "Growth Fund",
			NavOnPage:        1000,
			TotalUnits:       5000000,
			SellableQuantity: testutil.FloatPtr(200000),
		}

		decision := service.Evaluate(in, 990, 4.0)

		if decision.Outcome != model.OutcomeMoreDataRequired {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeMoreDataRequired, decision.Outcome)
		}
	})

	t.Run("zero sellable quantity never divides", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:         "Growth Fund",
			NavOnPage:        1000,
			TotalUnits:       5000000,
			SellableQuantity: testutil.FloatPtr(0),
			ExpertPrice:      testutil.FloatPtr(985),
		}

		decision := service.Evaluate(in, 990, 4.0)

		if decision.Outcome != model.OutcomeMoreDataRequired {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeMoreDataRequired, decision.Outcome)
		}
		if math.IsInf(decision.SuggestedPrice, 0) || math.IsNaN(decision.SuggestedPrice) {
			t.Errorf("Suggested price must stay finite, got %f", decision.SuggestedPrice)
		}
	})
}

func TestEvaluate_AdjustmentNeeded(t *testing.T) {
	t.Run("nav above board adds the fraction", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:         "Growth Fund",
			NavOnPage:        1000,
			TotalUnits:       5000000,
			SellableQuantity: testutil.FloatPtr(200000),
			ExpertPrice:      testutil.FloatPtr(985),
		}

		decision := service.Evaluate(in, 990, 4.0)

		if decision.Outcome != model.OutcomeAdjustmentNeeded {
			t.Fatalf("Expected outcome %q, got %q", model.OutcomeAdjustmentNeeded, decision.Outcome)
		}

		// fraction = 5,000,000 * 10 / 200,000 = 250
		if decision.SuggestedPrice != 1235 {
			t.Errorf("Expected suggested price 1235, got %f", decision.SuggestedPrice)
		}
		if decision.SuggestedDisplay != 1235 {
			t.Errorf("Expected display price 1235, got %f", decision.SuggestedDisplay)
		}
		if decision.BoardPrice != 990 {
			t.Errorf("Expected board price 990, got %f", decision.BoardPrice)
		}
	})

	t.Run("nav below board subtracts the fraction", func(t *testing.T) {
		in := model.ReconcileInput{
			FundName:         "Growth Fund",
			NavOnPage:        980,
			TotalUnits:       5000000,
			SellableQuantity: testutil.FloatPtr(200000),
			ExpertPrice:      testutil.FloatPtr(985),
		}

		decision := service.Evaluate(in, 990, 4.0)

		if decision.Outcome != model.OutcomeAdjustmentNeeded {
			t.Fatalf("Expected outcome %q, got %q", model.OutcomeAdjustmentNeeded, decision.Outcome)
		}

		// fraction = 5,000,000 * 10 / 200,000 = 250
		if decision.SuggestedPrice != 735 {
			t.Errorf("Expected suggested price 735, got %f", decision.SuggestedPrice)
		}
	})

	t.Run("correction direction follows the nav-board sign", func(t *testing.T) {
		expert := 985.0
		above := service.Evaluate(model.ReconcileInput{
			NavOnPage:        1000,
			TotalUnits:       1000,
			SellableQuantity: testutil.FloatPtr(100),
			ExpertPrice:      testutil.FloatPtr(expert),
		}, 990, 4.0)
		below := service.Evaluate(model.ReconcileInput{
			NavOnPage:        980,
			TotalUnits:       1000,
			SellableQuantity: testutil.FloatPtr(100),
			ExpertPrice:      testutil.FloatPtr(expert),
		}, 990, 4.0)

		if above.SuggestedPrice <= expert {
			t.Errorf("Nav above board should push the suggestion up, got %f", above.SuggestedPrice)
		}
		if below.SuggestedPrice >= expert {
			t.Errorf("Nav below board should push the suggestion down, got %f", below.SuggestedPrice)
		}
	})

	t.Run("display price rounds to two decimals", func(t *testing.T) {
		in := model.ReconcileInput{
			NavOnPage:        1000,
			TotalUnits:       1000,
			SellableQuantity: testutil.FloatPtr(3000),
			ExpertPrice:      testutil.FloatPtr(985),
		}

		// fraction = 1000 * 10 / 3000 = 3.333...
		decision := service.Evaluate(in, 990, 4.0)

		if decision.Outcome != model.OutcomeAdjustmentNeeded {
			t.Fatalf("Expected outcome %q, got %q", model.OutcomeAdjustmentNeeded, decision.Outcome)
		}
		if decision.SuggestedDisplay != 988.33 {
			t.Errorf("Expected display price 988.33, got %f", decision.SuggestedDisplay)
		}
		if decision.SuggestedPrice == decision.SuggestedDisplay {
			t.Error("Unrounded and display prices should differ for a repeating fraction")
		}
	})

	t.Run("display price rounds a half away from zero", func(t *testing.T) {
		in := model.ReconcileInput{
			NavOnPage:        1000,
			TotalUnits:       100,
			SellableQuantity: testutil.FloatPtr(8000),
			ExpertPrice:      testutil.FloatPtr(985),
		}

		// fraction = 100 * 10 / 8000 = 0.125 exactly, so the suggestion
		// lands on 985.125, a tie at the second decimal.
		decision := service.Evaluate(in, 990, 4.0)

		if decision.Outcome != model.OutcomeAdjustmentNeeded {
			t.Fatalf("Expected outcome %q, got %q", model.OutcomeAdjustmentNeeded, decision.Outcome)
		}
		if decision.SuggestedPrice != 985.125 {
			t.Fatalf("Expected suggested price 985.125, got %f", decision.SuggestedPrice)
		}
		if decision.SuggestedDisplay != 985.13 {
			t.Errorf("Expected display price 985.13, got %f", decision.SuggestedDisplay)
		}
	})
}
