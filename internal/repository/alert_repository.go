package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AlertSettingRow is the persisted form of the alert channel credentials,
// with the bot token still fernet-encrypted. Decryption is the service
// layer's concern.
type AlertSettingRow struct {
	ID                string
	BotTokenEncrypted string
	ChatID            int64
	Enabled           bool
	UpdatedAt         time.Time
}

// AlertRepository provides data access for the single-row alert_setting table.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new AlertRepository with the provided database connection.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Get retrieves the alert setting row.
// Returns nil, nil when the channel has never been configured.
func (r *AlertRepository) Get(ctx context.Context) (*AlertSettingRow, error) {
	query := `
		SELECT id, bot_token_encrypted, chat_id, enabled, updated_at
		FROM alert_setting
		LIMIT 1
	`

	var row AlertSettingRow
	var updated string

	err := r.db.QueryRowContext(ctx, query).Scan(
		&row.ID,
		&row.BotTokenEncrypted,
		&row.ChatID,
		&row.Enabled,
		&updated,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan alert_setting row: %w", err)
	}

	row.UpdatedAt, err = ParseTime(updated)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// Upsert replaces the alert setting. The table holds at most one row.
func (r *AlertRepository) Upsert(ctx context.Context, row AlertSettingRow) error {
	if row.ID == "" {
		row.ID = uuid.New().String()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin alert_setting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM alert_setting`); err != nil {
		return fmt.Errorf("failed to clear alert_setting: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO alert_setting (id, bot_token_encrypted, chat_id, enabled, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		row.ID,
		row.BotTokenEncrypted,
		row.ChatID,
		row.Enabled,
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert_setting: %w", err)
	}

	return tx.Commit()
}
