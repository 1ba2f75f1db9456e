package model

// Selectors is the bundle of page element selectors used by the scraping
// agent. The first group targets the NAV page, the second the expert price
// page. Empty strings mean "not yet configured".
type Selectors struct {
	DateSelector             string `json:"date_selector"`
	TimeSelector             string `json:"time_selector"`
	NavPriceSelector         string `json:"nav_price_selector"`
	TotalUnitsSelector       string `json:"total_units_selector"`
	NavSearchButtonSelector  string `json:"nav_search_button_selector"`
	SecuritiesListSelector   string `json:"securities_list_selector"`
	SellableQuantitySelector string `json:"sellable_quantity_selector"`
	ExpertPriceSelector      string `json:"expert_price_selector"`
	IncreaseRowsSelector     string `json:"increase_rows_selector"`
	ExpertSearchButtonSelect string `json:"expert_search_button_selector"`
}

// Configuration is the per-fund override row. At most one row exists per
// fund. A nil Tolerance and empty strings mean "inherit" at resolution time.
type Configuration struct {
	ID                 string   `json:"id"`
	FundID             string   `json:"fund_id"`
	Tolerance          *float64 `json:"tolerance,omitempty"`
	NavPageURL         string   `json:"nav_page_url,omitempty"`
	ExpertPricePageURL string   `json:"expert_price_page_url,omitempty"`
	Selectors
}

// EffectiveConfig is the fully materialized configuration consulted at
// reconciliation time. Every field is populated from the override chain:
// configuration row, then fund URL defaults, then the template for the
// fund's type, then the hard tolerance fallback. URL and selector fields
// may still be empty strings when nothing in the chain provides them;
// callers treat that as "not yet configured", not as an error.
type EffectiveConfig struct {
	FundName           string  `json:"fund_name"`
	Tolerance          float64 `json:"tolerance"`
	NavPageURL         string  `json:"nav_page_url"`
	ExpertPricePageURL string  `json:"expert_price_page_url"`
	Selectors
}

// DefaultTolerance is the hard fallback applied when neither the
// configuration row nor the template carries a tolerance.
const DefaultTolerance = 4.0
