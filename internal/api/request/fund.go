package request

// CreateFundRequest is the payload for registering a fund.
type CreateFundRequest struct {
	Name               string `json:"name"`
	APISymbol          string `json:"api_symbol"`
	Type               string `json:"type"`
	NavPageURL         string `json:"nav_page_url"`
	ExpertPricePageURL string `json:"expert_price_page_url"`
}

// UpdateFundRequest is the payload for updating fund metadata. Nil fields
// are left unchanged; the fund's name is immutable and comes from the path.
type UpdateFundRequest struct {
	APISymbol          *string `json:"api_symbol"`
	Type               *string `json:"type"`
	NavPageURL         *string `json:"nav_page_url"`
	ExpertPricePageURL *string `json:"expert_price_page_url"`
}
