package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/navassist/nav-reconciler/internal/model"
)

// SymbolRepository provides data access for the symbol_info resolution cache.
type SymbolRepository struct {
	db *sql.DB
}

// NewSymbolRepository creates a new SymbolRepository with the provided database connection.
func NewSymbolRepository(db *sql.DB) *SymbolRepository {
	return &SymbolRepository{db: db}
}

// Upsert records the latest resolution result for a display symbol.
func (r *SymbolRepository) Upsert(ctx context.Context, symbol, insCode string, valid bool) error {
	query := `
		INSERT INTO symbol_info (id, symbol, ins_code, last_updated, is_valid)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
			ins_code = excluded.ins_code,
			last_updated = excluded.last_updated,
			is_valid = excluded.is_valid
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		symbol,
		toNull(insCode),
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		valid,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert symbol_info: %w", err)
	}

	return nil
}

// Get retrieves the cached resolution for a display symbol.
// Returns nil, nil if the symbol has never been resolved.
func (r *SymbolRepository) Get(ctx context.Context, symbol string) (*model.Symbol, error) {
	query := `
		SELECT id, symbol, ins_code, last_updated, is_valid
		FROM symbol_info
		WHERE symbol = ?
	`

	var s model.Symbol
	var insCode, lastUpdated sql.NullString

	err := r.db.QueryRowContext(ctx, query, symbol).Scan(
		&s.ID,
		&s.Symbol,
		&insCode,
		&lastUpdated,
		&s.IsValid,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan symbol_info row: %w", err)
	}

	s.InsCode = insCode.String
	if lastUpdated.Valid {
		s.LastUpdated, err = ParseTime(lastUpdated.String)
		if err != nil {
			return nil, err
		}
	}

	return &s, nil
}
