package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
)

const configurationColumns = `
	tolerance, nav_page_url, expert_price_page_url,
	date_selector, time_selector, nav_price_selector, total_units_selector,
	nav_search_button_selector, securities_list_selector, sellable_quantity_selector,
	expert_price_selector, increase_rows_selector, expert_search_button_selector`

// ConfigurationRepository provides data access methods for the configuration
// table. The table holds at most one override row per fund.
type ConfigurationRepository struct {
	db *sql.DB
}

// NewConfigurationRepository creates a new ConfigurationRepository with the
// provided database connection.
func NewConfigurationRepository(db *sql.DB) *ConfigurationRepository {
	return &ConfigurationRepository{db: db}
}

// GetByFundID retrieves the configuration row for a fund.
// Returns apperrors.ErrConfigurationNotFound when the fund has no row.
func (r *ConfigurationRepository) GetByFundID(ctx context.Context, fundID string) (model.Configuration, error) {
	query := `SELECT id, fund_id, ` + configurationColumns + ` FROM configuration WHERE fund_id = ?`

	var c model.Configuration
	var tolerance sql.NullFloat64
	var cols [12]sql.NullString

	err := r.db.QueryRowContext(ctx, query, fundID).Scan(
		&c.ID,
		&c.FundID,
		&tolerance,
		&cols[0], &cols[1],
		&cols[2], &cols[3], &cols[4], &cols[5],
		&cols[6], &cols[7], &cols[8],
		&cols[9], &cols[10], &cols[11],
	)
	if err == sql.ErrNoRows {
		return model.Configuration{}, apperrors.ErrConfigurationNotFound
	}
	if err != nil {
		return model.Configuration{}, fmt.Errorf("failed to scan configuration row: %w", err)
	}

	if tolerance.Valid {
		c.Tolerance = &tolerance.Float64
	}
	c.NavPageURL = cols[0].String
	c.ExpertPricePageURL = cols[1].String
	c.Selectors = model.Selectors{
		DateSelector:             cols[2].String,
		TimeSelector:             cols[3].String,
		NavPriceSelector:         cols[4].String,
		TotalUnitsSelector:       cols[5].String,
		NavSearchButtonSelector:  cols[6].String,
		SecuritiesListSelector:   cols[7].String,
		SellableQuantitySelector: cols[8].String,
		ExpertPriceSelector:      cols[9].String,
		IncreaseRowsSelector:     cols[10].String,
		ExpertSearchButtonSelect: cols[11].String,
	}

	return c, nil
}

// Upsert writes the configuration row for a fund, inserting or updating in
// place. Last writer wins; administrative writes are operator-driven and rare.
func (r *ConfigurationRepository) Upsert(ctx context.Context, c model.Configuration) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	var tolerance sql.NullFloat64
	if c.Tolerance != nil {
		tolerance = sql.NullFloat64{Float64: *c.Tolerance, Valid: true}
	}

	query := `
		INSERT INTO configuration (id, fund_id, ` + configurationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fund_id) DO UPDATE SET
			tolerance = excluded.tolerance,
			nav_page_url = excluded.nav_page_url,
			expert_price_page_url = excluded.expert_price_page_url,
			date_selector = excluded.date_selector,
			time_selector = excluded.time_selector,
			nav_price_selector = excluded.nav_price_selector,
			total_units_selector = excluded.total_units_selector,
			nav_search_button_selector = excluded.nav_search_button_selector,
			securities_list_selector = excluded.securities_list_selector,
			sellable_quantity_selector = excluded.sellable_quantity_selector,
			expert_price_selector = excluded.expert_price_selector,
			increase_rows_selector = excluded.increase_rows_selector,
			expert_search_button_selector = excluded.expert_search_button_selector
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.FundID,
		tolerance,
		toNull(c.NavPageURL),
		toNull(c.ExpertPricePageURL),
		toNull(c.DateSelector),
		toNull(c.TimeSelector),
		toNull(c.NavPriceSelector),
		toNull(c.TotalUnitsSelector),
		toNull(c.NavSearchButtonSelector),
		toNull(c.SecuritiesListSelector),
		toNull(c.SellableQuantitySelector),
		toNull(c.ExpertPriceSelector),
		toNull(c.IncreaseRowsSelector),
		toNull(c.ExpertSearchButtonSelect),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert configuration: %w", err)
	}

	return nil
}
