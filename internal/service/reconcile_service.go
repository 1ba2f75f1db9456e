package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/repository"
	"github.com/navassist/nav-reconciler/internal/tsetmc"
)

// ReconcileService runs one NAV check: resolve the effective configuration,
// fetch the board price, evaluate the decision rule, and hand adjustment
// decisions to the audit and alert sink.
type ReconcileService struct {
	fundRepo      *repository.FundRepository
	logRepo       *repository.LogRepository
	configService *ConfigurationService
	alertService  *AlertService
	market        tsetmc.Client
}

// NewReconcileService creates a new ReconcileService with the provided dependencies.
func NewReconcileService(
	fundRepo *repository.FundRepository,
	logRepo *repository.LogRepository,
	configService *ConfigurationService,
	alertService *AlertService,
	market tsetmc.Client,
) *ReconcileService {
	return &ReconcileService{
		fundRepo:      fundRepo,
		logRepo:       logRepo,
		configService: configService,
		alertService:  alertService,
		market:        market,
	}
}

// Reconcile checks one operator-submitted NAV reading against the board price.
//
// Returns apperrors.ErrFundNotFound when the fund does not exist and
// apperrors.ErrBoardPriceUnavailable when the market source failed; every
// transport or parse failure of the fetcher is absorbed here, logged with
// the symbol, and surfaced only as that sentinel. A fetched price of
// exactly 0 is indistinguishable from the source's own failure signal and
// is also treated as unavailable.
//
// The audit row and alert are written only for adjustment decisions, after
// the decision is final, and are best-effort: their failure never fails the
// returned decision.
func (s *ReconcileService) Reconcile(ctx context.Context, in model.ReconcileInput) (model.Decision, error) {
	fund, err := s.fundRepo.GetByName(ctx, in.FundName)
	if err != nil {
		return model.Decision{}, err
	}

	cfg, err := s.configService.ResolveForFund(ctx, fund)
	if err != nil {
		return model.Decision{}, err
	}

	boardPrice, err := s.market.FetchBoardPrice(ctx, fund.APISymbol)
	if err != nil {
		log.Printf("board price fetch failed for %s (%s): %v", fund.Name, fund.APISymbol, err)
		return model.Decision{}, apperrors.ErrBoardPriceUnavailable
	}
	if boardPrice == 0 {
		log.Printf("board price fetch for %s (%s) returned 0, treating as unavailable", fund.Name, fund.APISymbol)
		return model.Decision{}, apperrors.ErrBoardPriceUnavailable
	}

	decision := Evaluate(in, boardPrice, cfg.Tolerance)

	switch decision.Outcome {
	case model.OutcomeOK:
		log.Printf("[%s] status OK, diff %.2f within tolerance %.2f", fund.Name, decision.Diff, cfg.Tolerance)
	case model.OutcomeMoreDataRequired:
		log.Printf("[%s] divergence %.2f confirmed but formula inputs missing", fund.Name, decision.Diff)
	case model.OutcomeAdjustmentNeeded:
		s.recordAdjustment(ctx, fund, in, decision)
	}

	return decision, nil
}

// recordAdjustment is the audit and alert sink. Failures are logged and
// swallowed: the decision has already been made and must reach the caller.
func (s *ReconcileService) recordAdjustment(ctx context.Context, fund model.Fund, in model.ReconcileInput, decision model.Decision) {
	entry := model.ReconciliationLog{
		FundID:           fund.ID,
		Timestamp:        time.Now().UTC(),
		NavOnPage:        in.NavOnPage,
		TotalUnits:       in.TotalUnits,
		SellableQuantity: *in.SellableQuantity,
		ExpertPrice:      *in.ExpertPrice,
		BoardPrice:       decision.BoardPrice,
		SuggestedPrice:   decision.SuggestedPrice,
		Status:           model.StatusAdjustmentNeeded,
	}

	if err := s.logRepo.Insert(ctx, entry); err != nil {
		log.Printf("failed to persist adjustment log for %s: %v", fund.Name, err)
	}

	message := fmt.Sprintf(
		"NAV alert: fund %s requires adjustment. Suggested NAV: %.2f (board %.2f, diff %.2f)",
		fund.Name, decision.SuggestedDisplay, decision.BoardPrice, decision.Diff,
	)
	s.alertService.Dispatch(ctx, message)
}

// GetLogs retrieves audit records, newest first. An empty fund name returns
// entries for every fund.
func (s *ReconcileService) GetLogs(ctx context.Context, fundName string) ([]model.ReconciliationLog, error) {
	return s.logRepo.GetByFund(ctx, fundName)
}
