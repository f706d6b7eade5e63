package models

import "time"

// InitialCash is the virtual starting endowment in cents ($100,000).
const InitialCash int64 = 10_000_000

// Position represents an open holding of a symbol.
//
// BuyPrice is the acquisition price and never changes for the lifetime of
// the position, including after partial sells (the remainder keeps its
// original cost basis). CurrentPrice, PnL and PnLPercent are updated only
// by a price refresh.
type Position struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Quantity     int64     `json:"quantity"`
	BuyPrice     int64     `json:"buy_price"`
	CurrentPrice int64     `json:"current_price"`
	PnL          int64     `json:"pnl"`
	PnLPercent   float64   `json:"pnl_percent"`
	CreatedAt    time.Time `json:"created_at"`
}

// MarketValue returns the position's value at its last known price.
func (p *Position) MarketValue() int64 {
	return p.CurrentPrice * p.Quantity
}

// PortfolioSnapshot is the externally visible state of the paper portfolio.
// TotalValue and TotalPnL are always derived from cash and positions,
// never stored as ground truth.
type PortfolioSnapshot struct {
	Cash       int64      `json:"cash"`
	Positions  []Position `json:"positions"`
	TotalValue int64      `json:"total_value"`
	TotalPnL   int64      `json:"total_pnl"`
}
