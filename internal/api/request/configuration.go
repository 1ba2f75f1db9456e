package request

// SaveConfigurationRequest upserts the override row for a fund. Empty
// strings and a nil tolerance mean "inherit from the fund/template chain".
type SaveConfigurationRequest struct {
	FundName           string   `json:"fund_name"`
	Tolerance          *float64 `json:"tolerance"`
	NavPageURL         string   `json:"nav_page_url"`
	ExpertPricePageURL string   `json:"expert_price_page_url"`
	SelectorFields
}

// SelectorFields is the JSON shape of the ten scraping selectors, shared by
// configuration and template payloads.
type SelectorFields struct {
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
