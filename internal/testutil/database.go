package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Fund table
		CREATE TABLE fund (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			api_symbol VARCHAR(255) NOT NULL,
			type VARCHAR(64) NOT NULL DEFAULT 'rayan',
			nav_page_url TEXT,
			expert_price_page_url TEXT,
			owner_user_id VARCHAR(36),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Per-fund configuration overrides (one row per fund)
		CREATE TABLE configuration (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36) NOT NULL UNIQUE,
			tolerance FLOAT,
			nav_page_url TEXT,
			expert_price_page_url TEXT,
			date_selector TEXT,
			time_selector TEXT,
			nav_price_selector TEXT,
			total_units_selector TEXT,
			nav_search_button_selector TEXT,
			securities_list_selector TEXT,
			sellable_quantity_selector TEXT,
			expert_price_selector TEXT,
			increase_rows_selector TEXT,
			expert_search_button_selector TEXT,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE
		);

		-- Named configuration templates keyed by fund type
		CREATE TABLE template (
			name VARCHAR(255) NOT NULL PRIMARY KEY,
			tolerance FLOAT NOT NULL DEFAULT 4.0,
			nav_page_url TEXT,
			expert_price_page_url TEXT,
			date_selector TEXT,
			time_selector TEXT,
			nav_price_selector TEXT,
			total_units_selector TEXT,
			nav_search_button_selector TEXT,
			securities_list_selector TEXT,
			sellable_quantity_selector TEXT,
			expert_price_selector TEXT,
			increase_rows_selector TEXT,
			expert_search_button_selector TEXT
		);

		-- Audit trail of adjustment decisions
		CREATE TABLE reconciliation_log (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36) NOT NULL,
			timestamp DATETIME NOT NULL,
			nav_on_page FLOAT NOT NULL,
			total_units FLOAT NOT NULL,
			sellable_quantity FLOAT NOT NULL,
			expert_price FLOAT NOT NULL,
			board_price FLOAT NOT NULL,
			suggested_price FLOAT NOT NULL,
			status VARCHAR(32) NOT NULL,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE
		);

		-- Symbol resolution cache
		CREATE TABLE symbol_info (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(255) NOT NULL UNIQUE,
			ins_code VARCHAR(64),
			last_updated DATETIME,
			is_valid BOOLEAN NOT NULL DEFAULT 0
		);

		-- Alert channel credentials (single row)
		CREATE TABLE alert_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			bot_token_encrypted TEXT NOT NULL,
			chat_id INTEGER NOT NULL,
			enabled BOOLEAN NOT NULL DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX ix_reconciliation_log_fund_id ON reconciliation_log(fund_id);
		CREATE INDEX ix_reconciliation_log_timestamp ON reconciliation_log(timestamp);
	`

	_, err := db.Exec(schema)
	return err
}
