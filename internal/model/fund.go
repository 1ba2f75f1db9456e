package model

// Fund represents an investment fund whose self-reported NAV page is checked
// against the exchange board price. Name is the unique operator-facing key.
type Fund struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	APISymbol          string `json:"api_symbol"`
	Type               string `json:"type"`
	NavPageURL         string `json:"nav_page_url,omitempty"`
	ExpertPricePageURL string `json:"expert_price_page_url,omitempty"`
	OwnerUserID        string `json:"owner_user_id,omitempty"`
}
