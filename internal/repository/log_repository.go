package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/navassist/nav-reconciler/internal/model"
)

// LogRepository provides data access for the append-only reconciliation_log
// table. Rows are never updated or deleted by the core.
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new LogRepository with the provided database connection.
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Insert appends one audit record.
func (r *LogRepository) Insert(ctx context.Context, entry model.ReconciliationLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	query := `
		INSERT INTO reconciliation_log
			(id, fund_id, timestamp, nav_on_page, total_units, sellable_quantity,
			 expert_price, board_price, suggested_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.FundID,
		entry.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		entry.NavOnPage,
		entry.TotalUnits,
		entry.SellableQuantity,
		entry.ExpertPrice,
		entry.BoardPrice,
		entry.SuggestedPrice,
		entry.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reconciliation log: %w", err)
	}

	return nil
}

// GetByFund retrieves log entries, newest first. An empty fundName returns
// entries across all funds.
func (r *LogRepository) GetByFund(ctx context.Context, fundName string) ([]model.ReconciliationLog, error) {
	query := `
		SELECT l.id, l.fund_id, f.name, l.timestamp, l.nav_on_page, l.total_units,
		       l.sellable_quantity, l.expert_price, l.board_price, l.suggested_price, l.status
		FROM reconciliation_log l
		JOIN fund f ON f.id = l.fund_id
	`

	var args []any
	if fundName != "" {
		query += ` WHERE f.name = ?`
		args = append(args, fundName)
	}
	query += ` ORDER BY l.timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation_log table: %w", err)
	}
	defer rows.Close()

	entries := []model.ReconciliationLog{}

	for rows.Next() {
		var e model.ReconciliationLog
		var ts string

		err := rows.Scan(
			&e.ID,
			&e.FundID,
			&e.FundName,
			&ts,
			&e.NavOnPage,
			&e.TotalUnits,
			&e.SellableQuantity,
			&e.ExpertPrice,
			&e.BoardPrice,
			&e.SuggestedPrice,
			&e.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation_log results: %w", err)
		}

		e.Timestamp, err = ParseTime(ts)
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliation_log table: %w", err)
	}

	return entries, nil
}
