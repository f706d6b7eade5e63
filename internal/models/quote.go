package models

import "time"

// Quote is the latest known market data for a symbol. Price and Change are
// in cents; ChangePercent is the day change in percent.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         int64     `json:"price"`
	Change        int64     `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	RetrievedAt   time.Time `json:"retrieved_at"`
}
