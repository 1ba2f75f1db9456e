package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/testutil"
)

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("Failed to parse time %q: %v", value, err)
	}
	return parsed
}

func TestReconcileService_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("ok outcome writes no audit row and no alert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithBoardPrice(998)
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fund := testutil.NewFund().Build(t, db)

		decision, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:   fund.Name,
			NavOnPage:  1000,
			TotalUnits: 5000000,
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if decision.Outcome != model.OutcomeOK {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeOK, decision.Outcome)
		}

		logs, err := rs.GetLogs(ctx, "")
		if err != nil {
			t.Fatalf("GetLogs failed: %v", err)
		}
		if len(logs) != 0 {
			t.Errorf("Expected no audit rows for ok outcome, got %d", len(logs))
		}
		if len(notifier.Messages()) != 0 {
			t.Errorf("Expected no alerts for ok outcome, got %d", len(notifier.Messages()))
		}
	})

	t.Run("more data required writes no audit row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithBoardPrice(990)
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fund := testutil.NewFund().Build(t, db)

		decision, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:   fund.Name,
			NavOnPage:  1000,
			TotalUnits: 5000000,
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if decision.Outcome != model.OutcomeMoreDataRequired {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeMoreDataRequired, decision.Outcome)
		}

		logs, err := rs.GetLogs(ctx, "")
		if err != nil {
			t.Fatalf("GetLogs failed: %v", err)
		}
		if len(logs) != 0 {
			t.Errorf("Expected no audit rows without a correction, got %d", len(logs))
		}
		if len(notifier.Messages()) != 0 {
			t.Errorf("Expected no alerts without a correction, got %d", len(notifier.Messages()))
		}
	})

	t.Run("adjustment writes audit row and alert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithBoardPrice(990)
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fund := testutil.NewFund().Build(t, db)

		decision, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:         fund.Name,
			NavOnPage:        1000,
			TotalUnits:       5000000,
			SellableQuantity: testutil.FloatPtr(200000),
			ExpertPrice:      testutil.FloatPtr(985),
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if decision.Outcome != model.OutcomeAdjustmentNeeded {
			t.Fatalf("Expected outcome %q, got %q", model.OutcomeAdjustmentNeeded, decision.Outcome)
		}
		if decision.SuggestedPrice != 1235 {
			t.Errorf("Expected suggested price 1235, got %f", decision.SuggestedPrice)
		}

		logs, err := rs.GetLogs(ctx, fund.Name)
		if err != nil {
			t.Fatalf("GetLogs failed: %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("Expected 1 audit row, got %d", len(logs))
		}

		entry := logs[0]
		if entry.FundID != fund.ID {
			t.Errorf("Expected fund ID %s, got %s", fund.ID, entry.FundID)
		}
		if entry.Status != model.StatusAdjustmentNeeded {
			t.Errorf("Expected status %q, got %q", model.StatusAdjustmentNeeded, entry.Status)
		}
		if entry.SuggestedPrice != 1235 {
			t.Errorf("Expected logged suggestion 1235, got %f", entry.SuggestedPrice)
		}
		if entry.BoardPrice != 990 {
			t.Errorf("Expected logged board price 990, got %f", entry.BoardPrice)
		}

		messages := notifier.Messages()
		if len(messages) != 1 {
			t.Fatalf("Expected 1 alert, got %d", len(messages))
		}
		if !strings.Contains(messages[0], fund.Name) {
			t.Errorf("Alert should name the fund, got %q", messages[0])
		}
		if !strings.Contains(messages[0], "1235.00") {
			t.Errorf("Alert should carry the suggested NAV, got %q", messages[0])
		}
	})

	t.Run("alert failure does not fail the decision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithBoardPrice(990)
		notifier := testutil.NewMockNotifier().WithError(errors.New("telegram down"))
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fund := testutil.NewFund().Build(t, db)

		decision, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:         fund.Name,
			NavOnPage:        1000,
			TotalUnits:       5000000,
			SellableQuantity: testutil.FloatPtr(200000),
			ExpertPrice:      testutil.FloatPtr(985),
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if decision.Outcome != model.OutcomeAdjustmentNeeded {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeAdjustmentNeeded, decision.Outcome)
		}

		// The audit row still lands.
		logs, err := rs.GetLogs(ctx, fund.Name)
		if err != nil {
			t.Fatalf("GetLogs failed: %v", err)
		}
		if len(logs) != 1 {
			t.Errorf("Expected 1 audit row despite alert failure, got %d", len(logs))
		}
	})

	t.Run("fetch failure surfaces as board price unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithFetchError(errors.New("connection refused"))
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fund := testutil.NewFund().Build(t, db)

		_, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:   fund.Name,
			NavOnPage:  1000,
			TotalUnits: 5000000,
		})
		if !errors.Is(err, apperrors.ErrBoardPriceUnavailable) {
			t.Errorf("Expected ErrBoardPriceUnavailable, got %v", err)
		}
	})

	t.Run("zero board price is treated as unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithBoardPrice(0)
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fund := testutil.NewFund().Build(t, db)

		_, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:   fund.Name,
			NavOnPage:  1000,
			TotalUnits: 5000000,
		})
		if !errors.Is(err, apperrors.ErrBoardPriceUnavailable) {
			t.Errorf("Expected ErrBoardPriceUnavailable for zero price, got %v", err)
		}
	})

	t.Run("unknown fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient()
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		_, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:   "No Such Fund",
			NavOnPage:  1000,
			TotalUnits: 5000000,
		})
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
		if market.FetchCount != 0 {
			t.Errorf("Expected no market call for unknown fund, got %d", market.FetchCount)
		}
	})

	t.Run("per-fund tolerance override drives the decision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithBoardPrice(998)
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fund := testutil.NewFund().Build(t, db)
		testutil.NewConfiguration(fund.ID).WithTolerance(1.0).Build(t, db)

		// diff = 2 is ok under the 4.0 default but divergent under the
		// fund's own 1.0 tolerance.
		decision, err := rs.Reconcile(ctx, model.ReconcileInput{
			FundName:   fund.Name,
			NavOnPage:  1000,
			TotalUnits: 5000000,
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if decision.Outcome != model.OutcomeMoreDataRequired {
			t.Errorf("Expected outcome %q, got %q", model.OutcomeMoreDataRequired, decision.Outcome)
		}
	})
}

func TestReconcileService_GetLogs(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by fund and orders newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient()
		notifier := testutil.NewMockNotifier()
		rs := testutil.NewTestReconcileService(t, db, market, notifier)

		fundA := testutil.NewFund().Build(t, db)
		fundB := testutil.NewFund().Build(t, db)

		older := testutil.CreateLogEntry(t, db, fundA.ID,
			mustParseTime(t, "2026-08-30 10:00:00"), model.StatusAdjustmentNeeded)
		newer := testutil.CreateLogEntry(t, db, fundA.ID,
			mustParseTime(t, "2026-08-31 10:00:00"), model.StatusAdjustmentNeeded)
		testutil.CreateLogEntry(t, db, fundB.ID,
			mustParseTime(t, "2026-08-31 11:00:00"), model.StatusAdjustmentNeeded)

		logs, err := rs.GetLogs(ctx, fundA.Name)
		if err != nil {
			t.Fatalf("GetLogs failed: %v", err)
		}
		if len(logs) != 2 {
			t.Fatalf("Expected 2 rows for fund A, got %d", len(logs))
		}
		if logs[0].ID != newer.ID || logs[1].ID != older.ID {
			t.Error("Expected newest-first ordering")
		}
		if logs[0].FundName != fundA.Name {
			t.Errorf("Expected fund name %q on the row, got %q", fundA.Name, logs[0].FundName)
		}

		all, err := rs.GetLogs(ctx, "")
		if err != nil {
			t.Fatalf("GetLogs failed: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("Expected 3 rows without a filter, got %d", len(all))
		}
	})
}
