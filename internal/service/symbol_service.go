package service

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/navassist/nav-reconciler/internal/repository"
	"github.com/navassist/nav-reconciler/internal/tsetmc"
)

// symbolRefreshConcurrency bounds parallel search-endpoint calls during a sweep.
const symbolRefreshConcurrency = 4

// SymbolService maintains the symbol_info resolution cache. The scheduled
// sweep revalidates every fund's display symbol against the search endpoint
// so operators can spot renamed or delisted instruments before a
// reconciliation fails at request time.
type SymbolService struct {
	fundRepo   *repository.FundRepository
	symbolRepo *repository.SymbolRepository
	market     tsetmc.Client
}

// NewSymbolService creates a new SymbolService with the provided dependencies.
func NewSymbolService(
	fundRepo *repository.FundRepository,
	symbolRepo *repository.SymbolRepository,
	market tsetmc.Client,
) *SymbolService {
	return &SymbolService{
		fundRepo:   fundRepo,
		symbolRepo: symbolRepo,
		market:     market,
	}
}

// RefreshAll resolves every fund's symbol and records the outcome. A failed
// resolution marks the symbol invalid rather than aborting the sweep; only
// cache-write errors stop it.
func (s *SymbolService) RefreshAll(ctx context.Context) error {
	funds, err := s.fundRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(funds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(symbolRefreshConcurrency)

	for _, fund := range funds {
		if fund.APISymbol == "" || seen[fund.APISymbol] {
			continue
		}
		seen[fund.APISymbol] = true

		symbol := fund.APISymbol
		g.Go(func() error {
			insCode, err := s.market.ResolveSymbol(gctx, symbol)
			if err != nil {
				log.Printf("symbol refresh: resolution failed for %s: %v", symbol, err)
				return s.symbolRepo.Upsert(gctx, symbol, "", false)
			}
			return s.symbolRepo.Upsert(gctx, symbol, insCode, true)
		})
	}

	return g.Wait()
}
