package service

import (
	"context"

	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/repository"
)

// FundService handles fund-related business logic operations.
type FundService struct {
	fundRepo *repository.FundRepository
}

// NewFundService creates a new FundService with the provided repository dependency.
func NewFundService(fundRepo *repository.FundRepository) *FundService {
	return &FundService{fundRepo: fundRepo}
}

// CreateFund registers a new fund.
// Returns apperrors.ErrDuplicateEntry when the name is taken.
func (s *FundService) CreateFund(ctx context.Context, f model.Fund) (model.Fund, error) {
	return s.fundRepo.Insert(ctx, f)
}

// GetAllFunds retrieves all funds ordered by name.
func (s *FundService) GetAllFunds(ctx context.Context) ([]model.Fund, error) {
	return s.fundRepo.GetAll(ctx)
}

// GetFund retrieves a fund by its unique name.
func (s *FundService) GetFund(ctx context.Context, name string) (model.Fund, error) {
	return s.fundRepo.GetByName(ctx, name)
}

// UpdateFund replaces the mutable metadata of a fund (identity stays fixed).
func (s *FundService) UpdateFund(ctx context.Context, f model.Fund) error {
	return s.fundRepo.Update(ctx, f)
}

// DeleteFund removes a fund and, through the schema's cascades, its
// configuration row and reconciliation logs.
func (s *FundService) DeleteFund(ctx context.Context, name string) error {
	return s.fundRepo.Delete(ctx, name)
}
