package model

import "time"

// Symbol is one row of the symbol resolution cache, refreshed by the
// scheduled sweep. InsCode is the internal instrument key the price
// endpoint understands.
type Symbol struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	InsCode     string    `json:"ins_code"`
	LastUpdated time.Time `json:"last_updated"`
	IsValid     bool      `json:"is_valid"`
}
