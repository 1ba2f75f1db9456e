package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/navassist/nav-reconciler/internal/model"
)

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund().Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund().
//	    WithName("Growth Fund").
//	    WithType("custom").
//	    WithNavPageURL("https://vendor.example/nav").
//	    Build(t, db)
type FundBuilder struct {
	ID                 string
	Name               string
	APISymbol          string
	Type               string
	NavPageURL         string
	ExpertPricePageURL string
	OwnerUserID        string
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:        MakeID(),
		Name:      MakeFundName("Test Fund"),
		APISymbol: MakeSymbol(""),
		Type:      "rayan",
	}
}

// WithID sets a custom ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithAPISymbol sets a custom display symbol.
func (b *FundBuilder) WithAPISymbol(symbol string) *FundBuilder {
	b.APISymbol = symbol
	return b
}

// WithType sets a custom fund type.
func (b *FundBuilder) WithType(fundType string) *FundBuilder {
	b.Type = fundType
	return b
}

// WithNavPageURL sets a fund-level NAV page URL default.
func (b *FundBuilder) WithNavPageURL(url string) *FundBuilder {
	b.NavPageURL = url
	return b
}

// WithExpertPricePageURL sets a fund-level expert price page URL default.
func (b *FundBuilder) WithExpertPricePageURL(url string) *FundBuilder {
	b.ExpertPricePageURL = url
	return b
}

// WithOwnerUserID sets the owning operator.
func (b *FundBuilder) WithOwnerUserID(userID string) *FundBuilder {
	b.OwnerUserID = userID
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, name, api_symbol, type, nav_page_url, expert_price_page_url, owner_user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.APISymbol, b.Type,
		nullable(b.NavPageURL), nullable(b.ExpertPricePageURL), nullable(b.OwnerUserID))
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:                 b.ID,
		Name:               b.Name,
		APISymbol:          b.APISymbol,
		Type:               b.Type,
		NavPageURL:         b.NavPageURL,
		ExpertPricePageURL: b.ExpertPricePageURL,
		OwnerUserID:        b.OwnerUserID,
	}
}

// ConfigurationBuilder provides a fluent interface for creating per-fund
// configuration override rows.
//
// Example usage:
//
//	cfg := testutil.NewConfiguration(fund.ID).
//	    WithTolerance(2.5).
//	    WithNavPriceSelector("#nav-price").
//	    Build(t, db)
type ConfigurationBuilder struct {
	ID                 string
	FundID             string
	Tolerance          *float64
	NavPageURL         string
	ExpertPricePageURL string
	Selectors          model.Selectors
}

// NewConfiguration creates a ConfigurationBuilder for the given fund. All
// override fields start unset, meaning "inherit" at resolution time.
func NewConfiguration(fundID string) *ConfigurationBuilder {
	return &ConfigurationBuilder{
		ID:     MakeID(),
		FundID: fundID,
	}
}

// WithTolerance sets a tolerance override.
func (b *ConfigurationBuilder) WithTolerance(tolerance float64) *ConfigurationBuilder {
	b.Tolerance = &tolerance
	return b
}

// WithNavPageURL sets a NAV page URL override.
func (b *ConfigurationBuilder) WithNavPageURL(url string) *ConfigurationBuilder {
	b.NavPageURL = url
	return b
}

// WithExpertPricePageURL sets an expert price page URL override.
func (b *ConfigurationBuilder) WithExpertPricePageURL(url string) *ConfigurationBuilder {
	b.ExpertPricePageURL = url
	return b
}

// WithNavPriceSelector sets the NAV price selector override.
func (b *ConfigurationBuilder) WithNavPriceSelector(selector string) *ConfigurationBuilder {
	b.Selectors.NavPriceSelector = selector
	return b
}

// WithSelectors replaces the whole selector bundle.
func (b *ConfigurationBuilder) WithSelectors(selectors model.Selectors) *ConfigurationBuilder {
	b.Selectors = selectors
	return b
}

// Build creates the configuration row in the database and returns it.
func (b *ConfigurationBuilder) Build(t *testing.T, db *sql.DB) model.Configuration {
	t.Helper()

	query := `
		INSERT INTO configuration (
			id, fund_id, tolerance, nav_page_url, expert_price_page_url,
			date_selector, time_selector, nav_price_selector, total_units_selector,
			nav_search_button_selector, securities_list_selector, sellable_quantity_selector,
			expert_price_selector, increase_rows_selector, expert_search_button_selector
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.FundID, b.Tolerance,
		nullable(b.NavPageURL), nullable(b.ExpertPricePageURL),
		nullable(b.Selectors.DateSelector), nullable(b.Selectors.TimeSelector),
		nullable(b.Selectors.NavPriceSelector), nullable(b.Selectors.TotalUnitsSelector),
		nullable(b.Selectors.NavSearchButtonSelector), nullable(b.Selectors.SecuritiesListSelector),
		nullable(b.Selectors.SellableQuantitySelector), nullable(b.Selectors.ExpertPriceSelector),
		nullable(b.Selectors.IncreaseRowsSelector), nullable(b.Selectors.ExpertSearchButtonSelect))
	if err != nil {
		t.Fatalf("Failed to create test configuration: %v", err)
	}

	return model.Configuration{
		ID:                 b.ID,
		FundID:             b.FundID,
		Tolerance:          b.Tolerance,
		NavPageURL:         b.NavPageURL,
		ExpertPricePageURL: b.ExpertPricePageURL,
		Selectors:          b.Selectors,
	}
}

// TemplateBuilder provides a fluent interface for creating configuration
// templates.
//
// Example usage:
//
//	tmpl := testutil.NewTemplate("rayan").
//	    WithTolerance(3.0).
//	    WithNavPageURL("https://rayan.example/nav").
//	    Build(t, db)
type TemplateBuilder struct {
	Name               string
	Tolerance          float64
	NavPageURL         string
	ExpertPricePageURL string
	Selectors          model.Selectors
}

// NewTemplate creates a TemplateBuilder with the default tolerance.
func NewTemplate(name string) *TemplateBuilder {
	return &TemplateBuilder{
		Name:      name,
		Tolerance: model.DefaultTolerance,
	}
}

// WithTolerance sets the template tolerance.
func (b *TemplateBuilder) WithTolerance(tolerance float64) *TemplateBuilder {
	b.Tolerance = tolerance
	return b
}

// WithNavPageURL sets the template NAV page URL.
func (b *TemplateBuilder) WithNavPageURL(url string) *TemplateBuilder {
	b.NavPageURL = url
	return b
}

// WithExpertPricePageURL sets the template expert price page URL.
func (b *TemplateBuilder) WithExpertPricePageURL(url string) *TemplateBuilder {
	b.ExpertPricePageURL = url
	return b
}

// WithSelectors replaces the whole selector bundle.
func (b *TemplateBuilder) WithSelectors(selectors model.Selectors) *TemplateBuilder {
	b.Selectors = selectors
	return b
}

// Build creates the template in the database and returns it.
func (b *TemplateBuilder) Build(t *testing.T, db *sql.DB) model.Template {
	t.Helper()

	query := `
		INSERT INTO template (
			name, tolerance, nav_page_url, expert_price_page_url,
			date_selector, time_selector, nav_price_selector, total_units_selector,
			nav_search_button_selector, securities_list_selector, sellable_quantity_selector,
			expert_price_selector, increase_rows_selector, expert_search_button_selector
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.Name, b.Tolerance,
		nullable(b.NavPageURL), nullable(b.ExpertPricePageURL),
		nullable(b.Selectors.DateSelector), nullable(b.Selectors.TimeSelector),
		nullable(b.Selectors.NavPriceSelector), nullable(b.Selectors.TotalUnitsSelector),
		nullable(b.Selectors.NavSearchButtonSelector), nullable(b.Selectors.SecuritiesListSelector),
		nullable(b.Selectors.SellableQuantitySelector), nullable(b.Selectors.ExpertPriceSelector),
		nullable(b.Selectors.IncreaseRowsSelector), nullable(b.Selectors.ExpertSearchButtonSelect))
	if err != nil {
		t.Fatalf("Failed to create test template: %v", err)
	}

	return model.Template{
		Name:               b.Name,
		Tolerance:          b.Tolerance,
		NavPageURL:         b.NavPageURL,
		ExpertPricePageURL: b.ExpertPricePageURL,
		Selectors:          b.Selectors,
	}
}

// CreateLogEntry inserts a reconciliation audit row directly. Used to seed
// history for retrieval tests.
func CreateLogEntry(t *testing.T, db *sql.DB, fundID string, timestamp time.Time, status string) model.ReconciliationLog {
	t.Helper()

	entry := model.ReconciliationLog{
		ID:               MakeID(),
		FundID:           fundID,
		Timestamp:        timestamp.UTC(),
		NavOnPage:        1000,
		TotalUnits:       5000000,
		SellableQuantity: 200000,
		ExpertPrice:      985,
		BoardPrice:       990,
		SuggestedPrice:   1235,
		Status:           status,
	}

	query := `
		INSERT INTO reconciliation_log (
			id, fund_id, timestamp, nav_on_page, total_units, sellable_quantity,
			expert_price, board_price, suggested_price, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, entry.ID, entry.FundID,
		entry.Timestamp.Format("2006-01-02 15:04:05"),
		entry.NavOnPage, entry.TotalUnits, entry.SellableQuantity,
		entry.ExpertPrice, entry.BoardPrice, entry.SuggestedPrice, entry.Status)
	if err != nil {
		t.Fatalf("Failed to create test log entry: %v", err)
	}

	return entry
}

// Convenience functions

// CreateFund creates a fund with the given name and default values.
//
// Example usage:
//
//	fund := testutil.CreateFund(t, db, "My Fund")
func CreateFund(t *testing.T, db *sql.DB, name string) model.Fund {
	t.Helper()
	return NewFund().WithName(name).Build(t, db)
}

// CreateFunds creates multiple funds with unique names.
func CreateFunds(t *testing.T, db *sql.DB, count int) []model.Fund {
	t.Helper()

	funds := make([]model.Fund, count)
	for i := 0; i < count; i++ {
		funds[i] = NewFund().Build(t, db)
	}
	return funds
}

// nullable converts an empty string to a SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
