package model

// Template is a named, reusable bundle of selectors and a default tolerance
// for a vendor page family (for example "rayan"). Funds reference a template
// through their Type field; templates hold no fund-specific state.
type Template struct {
	Name               string  `json:"name"`
	Tolerance          float64 `json:"tolerance"`
	NavPageURL         string  `json:"nav_page_url,omitempty"`
	ExpertPricePageURL string  `json:"expert_price_page_url,omitempty"`
	Selectors
}
