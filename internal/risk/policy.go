// Package risk evaluates proposed trades against user-configurable limits.
// Evaluation is pure: it never mutates the ledger or the daily counters.
package risk

import (
	"fmt"
	"math"
	"slices"
	"sync"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/store"
)

// Evaluator holds the current risk settings and the ephemeral daily usage
// counters. Settings persist through the injected store; usage counters are
// in-memory only and reset at local midnight.
type Evaluator struct {
	mu       sync.RWMutex
	store    store.Store
	settings models.RiskSettings
	usage    models.DailyUsage
}

// NewEvaluator creates an Evaluator, restoring persisted settings when they
// exist and otherwise starting from the built-in defaults.
func NewEvaluator(st store.Store) (*Evaluator, error) {
	e := &Evaluator{store: st, settings: models.DefaultRiskSettings()}

	var saved models.RiskSettings
	found, err := st.Load(store.KeyRiskSettings, &saved)
	if err != nil {
		return nil, err
	}
	if found {
		e.settings = saved
	}
	return e, nil
}

// Validate evaluates a proposed trade and returns every applicable
// violation, in a fixed order, without short-circuiting. An empty result
// means the trade may proceed. Monetary arguments are in cents.
func (e *Evaluator) Validate(symbol string, quantity, price, availableCash int64) []models.RiskViolation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	violations := []models.RiskViolation{}

	// An overflowing product saturates instead of wrapping negative, so it
	// can only exceed the size and cash limits, never sneak under them.
	tradeValue, ok := models.TradeValue(quantity, price)
	if !ok {
		tradeValue = math.MaxInt64
	}

	if !slices.Contains(e.settings.AllowedSymbols, symbol) {
		violations = append(violations, models.RiskViolation{
			Kind:     models.ViolationSymbolNotAllowed,
			Message:  fmt.Sprintf("%s is not in your approved trading list. Only conservative stocks and ETFs are allowed.", symbol),
			Severity: models.SeverityError,
		})
	}

	if tradeValue > e.settings.MaxPositionSize {
		violations = append(violations, models.RiskViolation{
			Kind:     models.ViolationPositionSizeExceeded,
			Message:  fmt.Sprintf("Trade value %s exceeds your maximum position size of %s.", dollars(tradeValue), dollars(e.settings.MaxPositionSize)),
			Severity: models.SeverityError,
		})
	}

	if e.usage.TradeCount >= e.settings.MaxDailyTrades {
		violations = append(violations, models.RiskViolation{
			Kind:     models.ViolationDailyTradeLimitReached,
			Message:  fmt.Sprintf("You've reached your daily limit of %d trades. Consider taking a break.", e.settings.MaxDailyTrades),
			Severity: models.SeverityError,
		})
	}

	if tradeValue > availableCash {
		violations = append(violations, models.RiskViolation{
			Kind:     models.ViolationInsufficientFunds,
			Message:  fmt.Sprintf("Insufficient funds. You need %s but only have %s.", dollars(tradeValue), dollars(availableCash)),
			Severity: models.SeverityError,
		})
	}

	if e.usage.Loss >= e.settings.DailyLossLimit {
		violations = append(violations, models.RiskViolation{
			Kind:     models.ViolationDailyLossLimitReached,
			Message:  fmt.Sprintf("You've reached your daily loss limit of %s. Trading is disabled for today.", dollars(e.settings.DailyLossLimit)),
			Severity: models.SeverityError,
		})
	}

	return violations
}

// ValidateSell applies the checks that gate disposals: the daily trade
// limit and the daily loss limit. Whitelist, position-size, and funds
// checks only make sense for acquisitions.
func (e *Evaluator) ValidateSell() []models.RiskViolation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	violations := []models.RiskViolation{}

	if e.usage.TradeCount >= e.settings.MaxDailyTrades {
		violations = append(violations, models.RiskViolation{
			Kind:     models.ViolationDailyTradeLimitReached,
			Message:  fmt.Sprintf("You've reached your daily limit of %d trades. Consider taking a break.", e.settings.MaxDailyTrades),
			Severity: models.SeverityError,
		})
	}

	if e.usage.Loss >= e.settings.DailyLossLimit {
		violations = append(violations, models.RiskViolation{
			Kind:     models.ViolationDailyLossLimitReached,
			Message:  fmt.Sprintf("You've reached your daily loss limit of %s. Trading is disabled for today.", dollars(e.settings.DailyLossLimit)),
			Severity: models.SeverityError,
		})
	}

	return violations
}

// Settings returns a copy of the current risk settings.
func (e *Evaluator) Settings() models.RiskSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.copySettingsLocked()
}

// Usage returns the current daily counters.
func (e *Evaluator) Usage() models.DailyUsage {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.usage
}

// UpdateSettings merges the provided partial change into the current
// settings and persists the result. Unspecified fields keep prior values.
func (e *Evaluator) UpdateSettings(update models.RiskSettingsUpdate) (models.RiskSettings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	merged := e.copySettingsLocked()
	if update.MaxPositionSize != nil {
		merged.MaxPositionSize = *update.MaxPositionSize
	}
	if update.MaxDailyTrades != nil {
		merged.MaxDailyTrades = *update.MaxDailyTrades
	}
	if update.DailyLossLimit != nil {
		merged.DailyLossLimit = *update.DailyLossLimit
	}
	if update.StopLossEnabled != nil {
		merged.StopLossEnabled = *update.StopLossEnabled
	}
	if update.StopLossPercent != nil {
		merged.StopLossPercent = *update.StopLossPercent
	}
	if update.RequireConfirmation != nil {
		merged.RequireConfirmation = *update.RequireConfirmation
	}
	if update.AllowedSymbols != nil {
		merged.AllowedSymbols = slices.Clone(*update.AllowedSymbols)
	}

	if merged.MaxPositionSize < 0 || merged.DailyLossLimit < 0 || merged.MaxDailyTrades < 0 {
		return models.RiskSettings{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Risk limits must be non-negative")
	}

	if err := e.store.Save(store.KeyRiskSettings, merged); err != nil {
		return models.RiskSettings{}, err
	}
	e.settings = merged
	return e.copySettingsLocked(), nil
}

// RecordTrade increments the daily trade count. A negative realized P&L
// adds its absolute value to the daily loss. The trade-execution flow calls
// this exactly once per executed trade, after the ledger mutation succeeds.
func (e *Evaluator) RecordTrade(realizedPnL int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.usage.TradeCount++
	if realizedPnL < 0 {
		e.usage.Loss += -realizedPnL
	}
}

// DailyReset zeroes the daily counters. The reset scheduler invokes this at
// each local midnight boundary.
func (e *Evaluator) DailyReset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.usage = models.DailyUsage{}
}

// ResetToDefaults restores the built-in settings, persists them, and zeroes
// the daily counters.
func (e *Evaluator) ResetToDefaults() (models.RiskSettings, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	defaults := models.DefaultRiskSettings()
	if err := e.store.Save(store.KeyRiskSettings, defaults); err != nil {
		return models.RiskSettings{}, err
	}
	e.settings = defaults
	e.usage = models.DailyUsage{}
	return e.copySettingsLocked(), nil
}

// copySettingsLocked returns a copy safe to hand out. Callers hold e.mu.
func (e *Evaluator) copySettingsLocked() models.RiskSettings {
	settings := e.settings
	settings.AllowedSymbols = slices.Clone(e.settings.AllowedSymbols)
	return settings
}

// dollars formats cents as a dollar amount for violation messages.
func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
