package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/navassist/nav-reconciler/internal/testutil"
)

func TestSymbolService_RefreshAll(t *testing.T) {
	ctx := context.Background()

	t.Run("records resolved symbols as valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient()
		ss := testutil.NewTestSymbolService(t, db, market)

		testutil.NewFund().WithAPISymbol("GRW1").Build(t, db)
		testutil.NewFund().WithAPISymbol("GRW2").Build(t, db)

		if err := ss.RefreshAll(ctx); err != nil {
			t.Fatalf("RefreshAll failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM symbol_info WHERE is_valid = 1").Scan(&count); err != nil {
			t.Fatalf("Count query failed: %v", err)
		}
		if count != 2 {
			t.Errorf("Expected 2 valid cache rows, got %d", count)
		}
		if market.ResolveCount != 2 {
			t.Errorf("Expected 2 resolve calls, got %d", market.ResolveCount)
		}
	})

	t.Run("shared symbols resolve once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient()
		ss := testutil.NewTestSymbolService(t, db, market)

		testutil.NewFund().WithAPISymbol("GRW1").Build(t, db)
		testutil.NewFund().WithAPISymbol("GRW1").Build(t, db)

		if err := ss.RefreshAll(ctx); err != nil {
			t.Fatalf("RefreshAll failed: %v", err)
		}

		if market.ResolveCount != 1 {
			t.Errorf("Expected 1 resolve call for a shared symbol, got %d", market.ResolveCount)
		}
	})

	t.Run("failed resolution marks the symbol invalid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithResolveError(errors.New("no results"))
		ss := testutil.NewTestSymbolService(t, db, market)

		testutil.NewFund().WithAPISymbol("GONE").Build(t, db)

		if err := ss.RefreshAll(ctx); err != nil {
			t.Fatalf("RefreshAll should absorb resolution failures, got %v", err)
		}

		var valid bool
		if err := db.QueryRow("SELECT is_valid FROM symbol_info WHERE symbol = ?", "GONE").Scan(&valid); err != nil {
			t.Fatalf("Row query failed: %v", err)
		}
		if valid {
			t.Error("Expected the unresolvable symbol to be marked invalid")
		}
	})

	t.Run("no funds is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient()
		ss := testutil.NewTestSymbolService(t, db, market)

		if err := ss.RefreshAll(ctx); err != nil {
			t.Fatalf("RefreshAll failed: %v", err)
		}
		if market.ResolveCount != 0 {
			t.Errorf("Expected no resolve calls, got %d", market.ResolveCount)
		}
	})
}
