package services

import (
	"context"

	"papertrade/internal/models"
	"papertrade/internal/pagination"
)

// TradeResult is returned for every executed trade: the recorded history
// row plus the portfolio state after the mutation.
type TradeResult struct {
	Trade     models.Trade             `json:"trade"`
	Portfolio models.PortfolioSnapshot `json:"portfolio"`
}

// TradingServicer defines the contract for trade execution and portfolio access.
type TradingServicer interface {
	GetPortfolio() models.PortfolioSnapshot
	PreviewTrade(symbol string, quantity, price int64) []models.RiskViolation
	ExecuteBuy(symbol string, quantity, price int64) (*TradeResult, []models.RiskViolation, error)
	ExecuteSell(positionID string, quantity, price int64) (*TradeResult, []models.RiskViolation, error)
	ResetPortfolio() error
	GetTradeHistory(page pagination.PageRequest, side string) (*pagination.PageResponse[models.Trade], error)
	RefreshPrices(priceBySymbol map[string]int64) error
	PositionSymbols() []string
}

// QuoteBatch is a quote lookup result. Synthetic marks fabricated
// development data; Missing lists requested symbols the provider had no
// data for.
type QuoteBatch struct {
	Quotes    []models.Quote `json:"quotes"`
	Missing   []string       `json:"missing,omitempty"`
	Synthetic bool           `json:"synthetic"`
}

// QuoteServicer defines the contract for market data access.
type QuoteServicer interface {
	GetQuotes(ctx context.Context, symbols []string) (*QuoteBatch, error)
}

// ProgressServicer defines the contract for onboarding progress tracking.
type ProgressServicer interface {
	Get() (models.Progress, error)
	RecordCompletedTrade() error
	Reset() error
}
