package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
	"github.com/navassist/nav-reconciler/internal/repository"
)

// ConfigurationService resolves the effective per-fund configuration and
// handles the administrative configuration/template writes.
type ConfigurationService struct {
	fundRepo     *repository.FundRepository
	configRepo   *repository.ConfigurationRepository
	templateRepo *repository.TemplateRepository
}

// NewConfigurationService creates a new ConfigurationService with the
// provided repository dependencies.
func NewConfigurationService(
	fundRepo *repository.FundRepository,
	configRepo *repository.ConfigurationRepository,
	templateRepo *repository.TemplateRepository,
) *ConfigurationService {
	return &ConfigurationService{
		fundRepo:     fundRepo,
		configRepo:   configRepo,
		templateRepo: templateRepo,
	}
}

// Resolve produces the fully materialized configuration for a fund.
//
// Precedence, highest to lowest: a non-empty configuration row value, the
// fund's own URL fields (URL fields only), the template matching the fund's
// type, and finally the hard tolerance fallback. A missing configuration
// row or template is not an error; only a missing fund is. Read-only.
func (s *ConfigurationService) Resolve(ctx context.Context, fundName string) (model.EffectiveConfig, error) {
	fund, err := s.fundRepo.GetByName(ctx, fundName)
	if err != nil {
		return model.EffectiveConfig{}, err
	}

	return s.ResolveForFund(ctx, fund)
}

// ResolveForFund is Resolve for a fund already loaded by the caller,
// skipping the name lookup.
func (s *ConfigurationService) ResolveForFund(ctx context.Context, fund model.Fund) (model.EffectiveConfig, error) {
	var row model.Configuration
	if c, err := s.configRepo.GetByFundID(ctx, fund.ID); err == nil {
		row = c
	} else if !errors.Is(err, apperrors.ErrConfigurationNotFound) {
		return model.EffectiveConfig{}, err
	}

	var tmpl model.Template
	haveTemplate := false
	if t, err := s.templateRepo.GetByName(ctx, fund.Type); err == nil {
		tmpl = t
		haveTemplate = true
	} else if !errors.Is(err, apperrors.ErrTemplateNotFound) {
		return model.EffectiveConfig{}, err
	}

	effective := model.EffectiveConfig{
		FundName:  fund.Name,
		Tolerance: model.DefaultTolerance,
	}

	if haveTemplate {
		effective.Tolerance = tmpl.Tolerance
		effective.NavPageURL = tmpl.NavPageURL
		effective.ExpertPricePageURL = tmpl.ExpertPricePageURL
		effective.Selectors = tmpl.Selectors
	}

	// Fund URL defaults sit above the template but below the row,
	// for the two URL fields only.
	effective.NavPageURL = firstNonEmpty(fund.NavPageURL, effective.NavPageURL)
	effective.ExpertPricePageURL = firstNonEmpty(fund.ExpertPricePageURL, effective.ExpertPricePageURL)

	if row.Tolerance != nil {
		effective.Tolerance = *row.Tolerance
	}
	effective.NavPageURL = firstNonEmpty(row.NavPageURL, effective.NavPageURL)
	effective.ExpertPricePageURL = firstNonEmpty(row.ExpertPricePageURL, effective.ExpertPricePageURL)
	effective.Selectors = overlaySelectors(row.Selectors, effective.Selectors)

	return effective, nil
}

// SaveConfiguration upserts the override row for the named fund.
func (s *ConfigurationService) SaveConfiguration(ctx context.Context, fundName string, c model.Configuration) error {
	fund, err := s.fundRepo.GetByName(ctx, fundName)
	if err != nil {
		return err
	}

	if c.Tolerance != nil && *c.Tolerance < 0 {
		return apperrors.ErrNegativeTolerance
	}

	c.FundID = fund.ID
	return s.configRepo.Upsert(ctx, c)
}

// ApplyTemplate copies every field of the named template into the fund's
// configuration row. Idempotent upsert keyed by fund.
func (s *ConfigurationService) ApplyTemplate(ctx context.Context, templateName, fundName string) error {
	fund, err := s.fundRepo.GetByName(ctx, fundName)
	if err != nil {
		return err
	}

	tmpl, err := s.templateRepo.GetByName(ctx, templateName)
	if err != nil {
		return err
	}

	tolerance := tmpl.Tolerance
	row := model.Configuration{
		FundID:             fund.ID,
		Tolerance:          &tolerance,
		NavPageURL:         tmpl.NavPageURL,
		ExpertPricePageURL: tmpl.ExpertPricePageURL,
		Selectors:          tmpl.Selectors,
	}

	if err := s.configRepo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("failed to apply template %q to fund %q: %w", templateName, fundName, err)
	}

	return nil
}

// SaveTemplate upserts a template by name.
func (s *ConfigurationService) SaveTemplate(ctx context.Context, t model.Template) error {
	if t.Name == "" {
		return apperrors.ErrEmptyName
	}
	if t.Tolerance < 0 {
		return apperrors.ErrNegativeTolerance
	}
	if t.Tolerance == 0 {
		t.Tolerance = model.DefaultTolerance
	}

	return s.templateRepo.Upsert(ctx, t)
}

// GetTemplate retrieves a template by name.
func (s *ConfigurationService) GetTemplate(ctx context.Context, name string) (model.Template, error) {
	return s.templateRepo.GetByName(ctx, name)
}

// GetAllTemplates retrieves all templates.
func (s *ConfigurationService) GetAllTemplates(ctx context.Context) ([]model.Template, error) {
	return s.templateRepo.GetAll(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// overlaySelectors keeps every non-empty field of top, falling back to base.
func overlaySelectors(top, base model.Selectors) model.Selectors {
	return model.Selectors{
		DateSelector:             firstNonEmpty(top.DateSelector, base.DateSelector),
		TimeSelector:             firstNonEmpty(top.TimeSelector, base.TimeSelector),
		NavPriceSelector:         firstNonEmpty(top.NavPriceSelector, base.NavPriceSelector),
		TotalUnitsSelector:       firstNonEmpty(top.TotalUnitsSelector, base.TotalUnitsSelector),
		NavSearchButtonSelector:  firstNonEmpty(top.NavSearchButtonSelector, base.NavSearchButtonSelector),
		SecuritiesListSelector:   firstNonEmpty(top.SecuritiesListSelector, base.SecuritiesListSelector),
		SellableQuantitySelector: firstNonEmpty(top.SellableQuantitySelector, base.SellableQuantitySelector),
		ExpertPriceSelector:      firstNonEmpty(top.ExpertPriceSelector, base.ExpertPriceSelector),
		IncreaseRowsSelector:     firstNonEmpty(top.IncreaseRowsSelector, base.IncreaseRowsSelector),
		ExpertSearchButtonSelect: firstNonEmpty(top.ExpertSearchButtonSelect, base.ExpertSearchButtonSelect),
	}
}
