package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
)

// TemplateRepository provides data access methods for the template table.
// Templates are keyed by name and operator-managed.
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new TemplateRepository with the provided
// database connection.
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// GetByName retrieves a template by name.
// Returns apperrors.ErrTemplateNotFound when no row matches.
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (model.Template, error) {
	query := `SELECT name, ` + configurationColumns + ` FROM template WHERE name = ?`

	row := r.db.QueryRowContext(ctx, query, name)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return model.Template{}, apperrors.ErrTemplateNotFound
	}
	if err != nil {
		return model.Template{}, err
	}

	return t, nil
}

// GetAll retrieves all templates ordered by name.
func (r *TemplateRepository) GetAll(ctx context.Context) ([]model.Template, error) {
	query := `SELECT name, ` + configurationColumns + ` FROM template ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query template table: %w", err)
	}
	defer rows.Close()

	templates := []model.Template{}

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template table: %w", err)
	}

	return templates, nil
}

// Upsert writes a template, inserting or replacing all fields by name.
func (r *TemplateRepository) Upsert(ctx context.Context, t model.Template) error {
	query := `
		INSERT INTO template (name, ` + configurationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
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
		t.Name,
		t.Tolerance,
		toNull(t.NavPageURL),
		toNull(t.ExpertPricePageURL),
		toNull(t.DateSelector),
		toNull(t.TimeSelector),
		toNull(t.NavPriceSelector),
		toNull(t.TotalUnitsSelector),
		toNull(t.NavSearchButtonSelector),
		toNull(t.SecuritiesListSelector),
		toNull(t.SellableQuantitySelector),
		toNull(t.ExpertPriceSelector),
		toNull(t.IncreaseRowsSelector),
		toNull(t.ExpertSearchButtonSelect),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert template: %w", err)
	}

	return nil
}

func scanTemplate(row scanner) (model.Template, error) {
	var t model.Template
	var cols [12]sql.NullString

	err := row.Scan(
		&t.Name,
		&t.Tolerance,
		&cols[0], &cols[1],
		&cols[2], &cols[3], &cols[4], &cols[5],
		&cols[6], &cols[7], &cols[8],
		&cols[9], &cols[10], &cols[11],
	)
	if err == sql.ErrNoRows {
		return model.Template{}, err
	}
	if err != nil {
		return model.Template{}, fmt.Errorf("failed to scan template row: %w", err)
	}

	t.NavPageURL = cols[0].String
	t.ExpertPricePageURL = cols[1].String
	t.Selectors = model.Selectors{
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

	return t, nil
}
