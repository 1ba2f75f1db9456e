package request

// SaveTemplateRequest upserts a template by name. A zero tolerance falls
// back to the default.
type SaveTemplateRequest struct {
	Name               string  `json:"name"`
	Tolerance          float64 `json:"tolerance"`
	NavPageURL         string  `json:"nav_page_url"`
	ExpertPricePageURL string  `json:"expert_price_page_url"`
	SelectorFields
}
