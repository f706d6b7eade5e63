package services

import (
	"sync"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/risk"

	"gorm.io/gorm"
)

// tradingService orchestrates the trade-execution flow: risk validation,
// ledger mutation, usage recording, and history logging. The mutex makes
// validate-then-mutate atomic so two concurrent requests cannot both pass
// validation against the same cash balance.
type tradingService struct {
	mu        sync.Mutex
	ledger    *ledger.Ledger
	evaluator *risk.Evaluator
	db        *gorm.DB
	progress  ProgressServicer
}

// NewTradingService creates a new TradingServicer.
func NewTradingService(l *ledger.Ledger, e *risk.Evaluator, db *gorm.DB, progress ProgressServicer) TradingServicer {
	return &tradingService{ledger: l, evaluator: e, db: db, progress: progress}
}

// GetPortfolio returns the current portfolio snapshot.
func (s *tradingService) GetPortfolio() models.PortfolioSnapshot {
	return s.ledger.Snapshot()
}

// PreviewTrade evaluates a proposed buy without executing it. The UI uses
// this for its confirmation dialog.
func (s *tradingService) PreviewTrade(symbol string, quantity, price int64) []models.RiskViolation {
	return s.evaluator.Validate(symbol, quantity, price, s.ledger.Cash())
}

// ExecuteBuy validates a buy against the risk policy and, when clear,
// applies it to the ledger. Blocked trades return the full violation list
// and leave all state unchanged.
func (s *tradingService) ExecuteBuy(symbol string, quantity, price int64) (*TradeResult, []models.RiskViolation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	violations := s.evaluator.Validate(symbol, quantity, price, s.ledger.Cash())
	if hasBlocking(violations) {
		return nil, violations, apperrors.ErrTradeBlocked
	}

	position, err := s.ledger.Buy(symbol, quantity, price)
	if err != nil {
		return nil, nil, err
	}

	// Usage counters and history are updated exactly once, after the
	// ledger mutation succeeded.
	s.evaluator.RecordTrade(0)
	trade := s.recordTrade(models.TradeSideBuy, symbol, quantity, price, 0, position.ID)
	return &TradeResult{Trade: trade, Portfolio: s.ledger.Snapshot()}, violations, nil
}

// ExecuteSell disposes of shares from an open position. Sells are gated by
// the daily trade and loss limits; whitelist and sizing checks apply only
// to acquisitions. A realized loss feeds the daily loss counter.
func (s *tradingService) ExecuteSell(positionID string, quantity, price int64) (*TradeResult, []models.RiskViolation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	violations := s.evaluator.ValidateSell()
	if hasBlocking(violations) {
		return nil, violations, apperrors.ErrTradeBlocked
	}

	result, err := s.ledger.Sell(positionID, quantity, price)
	if err != nil {
		return nil, nil, err
	}

	s.evaluator.RecordTrade(result.RealizedPnL)
	trade := s.recordTrade(models.TradeSideSell, result.Position.Symbol, quantity, price, result.RealizedPnL, result.Position.ID)
	return &TradeResult{Trade: trade, Portfolio: s.ledger.Snapshot()}, violations, nil
}

// ResetPortfolio restores the initial endowment and clears all positions.
// Risk settings and daily counters are not touched; they have their own
// reset operation.
func (s *tradingService) ResetPortfolio() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Reset()
}

// GetTradeHistory returns a paginated list of executed trades, newest first.
// A non-empty side restricts the list to buys or sells.
func (s *tradingService) GetTradeHistory(page pagination.PageRequest, side string) (*pagination.PageResponse[models.Trade], error) {
	page.Defaults()

	sideFilter := func(db *gorm.DB) *gorm.DB {
		if side == "" {
			return db
		}
		return db.Where("side = ?", side)
	}

	var totalItems int64
	if err := s.db.Model(&models.Trade{}).Scopes(sideFilter).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var trades []models.Trade
	if err := s.db.Model(&models.Trade{}).Scopes(sideFilter).Order("executed_at DESC").
		Scopes(pagination.Paginate(page)).Find(&trades).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(trades, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// RefreshPrices forwards the latest prices to the ledger. Called by the
// quote refresh loop after a successful fetch.
func (s *tradingService) RefreshPrices(priceBySymbol map[string]int64) error {
	return s.ledger.RefreshPrices(priceBySymbol)
}

// PositionSymbols returns the distinct symbols of all open positions.
func (s *tradingService) PositionSymbols() []string {
	return s.ledger.Symbols()
}

// recordTrade appends a history row and bumps onboarding progress. Both are
// best-effort: the executed trade stands even if bookkeeping fails.
func (s *tradingService) recordTrade(side models.TradeSide, symbol string, quantity, price, realizedPnL int64, positionID string) models.Trade {
	trade := models.Trade{
		Side:        side,
		Symbol:      symbol,
		Quantity:    quantity,
		Price:       price,
		RealizedPnL: realizedPnL,
		PositionID:  positionID,
		ExecutedAt:  time.Now(),
	}
	if err := s.db.Create(&trade).Error; err != nil {
		logger.Get().Errorw("failed to record trade history",
			"side", string(side),
			"symbol", symbol,
			"error", err.Error(),
		)
	}
	if err := s.progress.RecordCompletedTrade(); err != nil {
		logger.Get().Warnw("failed to update onboarding progress", "error", err.Error())
	}
	return trade
}

// hasBlocking reports whether any violation carries error severity.
func hasBlocking(violations []models.RiskViolation) bool {
	for _, v := range violations {
		if v.Blocking() {
			return true
		}
	}
	return false
}
