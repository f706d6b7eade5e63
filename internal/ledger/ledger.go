// Package ledger maintains the authoritative record of virtual cash and
// open positions, and keeps derived valuation figures consistent.
package ledger

import (
	"sync"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/store"
	"papertrade/internal/uuid"
)

// persistedPortfolio is the flat snapshot record written to the store.
// Totals are deliberately excluded: they are recomputed from cash and
// positions on every read so they can never drift.
type persistedPortfolio struct {
	Cash      int64             `json:"cash"`
	Positions []models.Position `json:"positions"`
}

// SellResult describes a completed sell.
type SellResult struct {
	Position    models.Position `json:"position"`
	Removed     bool            `json:"removed"`
	Proceeds    int64           `json:"proceeds"`
	RealizedPnL int64           `json:"realized_pnl"`
}

// Ledger owns the paper portfolio. All mutations persist the updated state
// through the injected store before returning, and failures leave state
// untouched.
type Ledger struct {
	mu        sync.Mutex
	store     store.Store
	cash      int64
	positions []models.Position
}

// New creates a Ledger, restoring a persisted snapshot when one exists and
// otherwise starting from the initial cash endowment.
func New(st store.Store) (*Ledger, error) {
	l := &Ledger{store: st, cash: models.InitialCash}

	var saved persistedPortfolio
	found, err := st.Load(store.KeyPortfolio, &saved)
	if err != nil {
		return nil, err
	}
	if found {
		l.cash = saved.Cash
		l.positions = saved.Positions
		l.recompute()
	}
	return l, nil
}

// Buy purchases quantity shares of symbol at price and appends a new
// position. The caller validates the trade against the risk policy first;
// the ledger enforces only its own invariant that cash never goes negative.
func (l *Ledger) Buy(symbol string, quantity, price int64) (*models.Position, error) {
	if symbol == "" || quantity <= 0 || price <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Buy requires a symbol, a positive quantity, and a positive price")
	}

	cost, ok := models.TradeValue(quantity, price)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Trade value exceeds the representable range")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cost > l.cash {
		return nil, apperrors.ErrInsufficientFunds
	}

	position := models.Position{
		ID:           uuid.New(),
		Symbol:       symbol,
		Quantity:     quantity,
		BuyPrice:     price,
		CurrentPrice: price,
		PnL:          0,
		PnLPercent:   0,
		CreatedAt:    time.Now(),
	}

	l.cash -= cost
	l.positions = append(l.positions, position)

	if err := l.persist(); err != nil {
		// Roll back the in-memory mutation so state matches storage.
		l.cash += cost
		l.positions = l.positions[:len(l.positions)-1]
		return nil, err
	}
	return &position, nil
}

// Sell disposes of quantity shares from the identified position at price.
// Selling the full quantity removes the position; a partial sell decrements
// it in place and keeps the original buy price for the remainder (no
// per-lot cost basis tracking).
func (l *Ledger) Sell(positionID string, quantity, price int64) (*SellResult, error) {
	if quantity <= 0 || price <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Sell requires a positive quantity and a positive price")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.positions {
		if l.positions[i].ID == positionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperrors.ErrPositionNotFound
	}

	position := l.positions[idx]
	if quantity > position.Quantity {
		return nil, apperrors.ErrInvalidSellQuantity
	}

	proceeds, ok := models.TradeValue(quantity, price)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Trade value exceeds the representable range")
	}
	// quantity*buyPrice fit at purchase time and quantity*price was just
	// checked, so the realized P&L cannot overflow.
	realized := (price - position.BuyPrice) * quantity
	removed := quantity == position.Quantity

	prevCash := l.cash
	prevPositions := l.positions

	l.cash += proceeds
	if removed {
		remaining := make([]models.Position, 0, len(l.positions)-1)
		remaining = append(remaining, l.positions[:idx]...)
		remaining = append(remaining, l.positions[idx+1:]...)
		l.positions = remaining
	} else {
		updated := make([]models.Position, len(l.positions))
		copy(updated, l.positions)
		updated[idx].Quantity -= quantity
		updated[idx].PnL = (updated[idx].CurrentPrice - updated[idx].BuyPrice) * updated[idx].Quantity
		l.positions = updated
	}

	if err := l.persist(); err != nil {
		l.cash = prevCash
		l.positions = prevPositions
		return nil, err
	}

	result := &SellResult{
		Position:    position,
		Removed:     removed,
		Proceeds:    proceeds,
		RealizedPnL: realized,
	}
	if !removed {
		result.Position = l.positions[idx]
	}
	return result, nil
}

// RefreshPrices applies the latest known prices to open positions. Symbols
// absent from the mapping keep their last known price and P&L; a refresh is
// idempotent for a given mapping.
func (l *Ledger) RefreshPrices(priceBySymbol map[string]int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	changed := false
	for i := range l.positions {
		p := &l.positions[i]
		price, ok := priceBySymbol[p.Symbol]
		if !ok || price <= 0 {
			// No data for this symbol; stale values are better than zeros.
			continue
		}
		p.CurrentPrice = price
		p.PnL = (price - p.BuyPrice) * p.Quantity
		p.PnLPercent = float64(price-p.BuyPrice) / float64(p.BuyPrice) * 100
		changed = true
	}

	if !changed {
		return nil
	}
	return l.persist()
}

// Reset restores the initial cash endowment and clears all positions.
func (l *Ledger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	prevCash := l.cash
	prevPositions := l.positions

	l.cash = models.InitialCash
	l.positions = nil

	if err := l.persist(); err != nil {
		l.cash = prevCash
		l.positions = prevPositions
		return err
	}
	return nil
}

// Snapshot returns a copy of the current portfolio with derived totals.
func (l *Ledger) Snapshot() models.PortfolioSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Cash returns the current available cash balance.
func (l *Ledger) Cash() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// Symbols returns the distinct symbols of all open positions.
func (l *Ledger) Symbols() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]bool, len(l.positions))
	var symbols []string
	for i := range l.positions {
		if !seen[l.positions[i].Symbol] {
			seen[l.positions[i].Symbol] = true
			symbols = append(symbols, l.positions[i].Symbol)
		}
	}
	return symbols
}

func (l *Ledger) snapshotLocked() models.PortfolioSnapshot {
	positions := make([]models.Position, len(l.positions))
	copy(positions, l.positions)

	snapshot := models.PortfolioSnapshot{
		Cash:       l.cash,
		Positions:  positions,
		TotalValue: l.cash,
	}
	for i := range positions {
		snapshot.TotalValue += positions[i].MarketValue()
		snapshot.TotalPnL += positions[i].PnL
	}
	return snapshot
}

// recompute refreshes derived P&L fields after loading a snapshot.
func (l *Ledger) recompute() {
	for i := range l.positions {
		p := &l.positions[i]
		p.PnL = (p.CurrentPrice - p.BuyPrice) * p.Quantity
		if p.BuyPrice > 0 {
			p.PnLPercent = float64(p.CurrentPrice-p.BuyPrice) / float64(p.BuyPrice) * 100
		}
	}
}

// persist writes the current state through the store. Callers hold l.mu.
func (l *Ledger) persist() error {
	return l.store.Save(store.KeyPortfolio, persistedPortfolio{
		Cash:      l.cash,
		Positions: l.positions,
	})
}
