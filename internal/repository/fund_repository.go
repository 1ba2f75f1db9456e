package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/navassist/nav-reconciler/internal/apperrors"
	"github.com/navassist/nav-reconciler/internal/model"
)

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// Insert creates a fund row. An empty Type defaults to "rayan".
// Returns apperrors.ErrDuplicateEntry when the name is already taken.
func (r *FundRepository) Insert(ctx context.Context, f model.Fund) (model.Fund, error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.Type == "" {
		f.Type = "rayan"
	}

	query := `
		INSERT INTO fund (id, name, api_symbol, type, nav_page_url, expert_price_page_url, owner_user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.Name,
		f.APISymbol,
		f.Type,
		toNull(f.NavPageURL),
		toNull(f.ExpertPricePageURL),
		toNull(f.OwnerUserID),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return model.Fund{}, apperrors.ErrDuplicateEntry
		}
		return model.Fund{}, fmt.Errorf("failed to insert fund: %w", err)
	}

	return f, nil
}

// GetAll retrieves all funds ordered by name.
// Returns an empty slice if no funds exist.
func (r *FundRepository) GetAll(ctx context.Context) ([]model.Fund, error) {
	query := `
		SELECT id, name, api_symbol, type, nav_page_url, expert_price_page_url, owner_user_id
		FROM fund
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// GetByName retrieves a single fund by its unique name.
// Returns apperrors.ErrFundNotFound when no row matches.
func (r *FundRepository) GetByName(ctx context.Context, name string) (model.Fund, error) {
	query := `
		SELECT id, name, api_symbol, type, nav_page_url, expert_price_page_url, owner_user_id
		FROM fund
		WHERE name = ?
	`

	row := r.db.QueryRowContext(ctx, query, name)
	f, err := scanFund(row)
	if err == sql.ErrNoRows {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, err
	}

	return f, nil
}

// Update replaces the mutable metadata of a fund. Identity (id, name) is immutable.
func (r *FundRepository) Update(ctx context.Context, f model.Fund) error {
	query := `
		UPDATE fund
		SET api_symbol = ?, type = ?, nav_page_url = ?, expert_price_page_url = ?, owner_user_id = ?
		WHERE name = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		f.APISymbol,
		f.Type,
		toNull(f.NavPageURL),
		toNull(f.ExpertPricePageURL),
		toNull(f.OwnerUserID),
		f.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update fund: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

// Delete removes a fund by name. The configuration row and reconciliation
// logs cascade through the foreign keys.
func (r *FundRepository) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fund WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFund(row scanner) (model.Fund, error) {
	var f model.Fund
	var navURL, expertURL, owner sql.NullString

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.APISymbol,
		&f.Type,
		&navURL,
		&expertURL,
		&owner,
	)
	if err == sql.ErrNoRows {
		return model.Fund{}, err
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to scan fund table results: %w", err)
	}

	f.NavPageURL = navURL.String
	f.ExpertPricePageURL = expertURL.String
	f.OwnerUserID = owner.String

	return f, nil
}

// toNull converts an empty string to a SQL NULL.
func toNull(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
