package models

// ViolationKind identifies the risk rule a proposed trade violates.
type ViolationKind string

const (
	ViolationSymbolNotAllowed       ViolationKind = "symbol_not_allowed"
	ViolationPositionSizeExceeded   ViolationKind = "position_size_exceeded"
	ViolationDailyTradeLimitReached ViolationKind = "daily_trade_limit_reached"
	ViolationInsufficientFunds      ViolationKind = "insufficient_funds"
	ViolationDailyLossLimitReached  ViolationKind = "daily_loss_limit_reached"
)

// ViolationSeverity classifies a violation as blocking or informational.
type ViolationSeverity string

const (
	// SeverityError blocks the trade.
	SeverityError ViolationSeverity = "error"
	// SeverityWarning is informational and does not block. The current
	// policy emits only errors; the severity field exists so soft checks
	// can be added without changing the response shape.
	SeverityWarning ViolationSeverity = "warning"
)

// RiskViolation is a single reason a proposed trade fails the risk policy.
// Violations are constructed fresh on each validation call and never persisted.
type RiskViolation struct {
	Kind     ViolationKind     `json:"kind"`
	Message  string            `json:"message"`
	Severity ViolationSeverity `json:"severity"`
}

// Blocking reports whether the violation should prevent execution.
func (v RiskViolation) Blocking() bool {
	return v.Severity == SeverityError
}

// RiskSettings is the user-editable risk policy configuration.
// All monetary limits are in cents.
type RiskSettings struct {
	MaxPositionSize     int64    `json:"max_position_size"`
	MaxDailyTrades      int      `json:"max_daily_trades"`
	DailyLossLimit      int64    `json:"daily_loss_limit"`
	StopLossEnabled     bool     `json:"stop_loss_enabled"`
	StopLossPercent     float64  `json:"stop_loss_percent"`
	RequireConfirmation bool     `json:"require_confirmation"`
	AllowedSymbols      []string `json:"allowed_symbols"`
}

// DefaultRiskSettings returns the built-in conservative policy:
// $1,000 max per position, 5 trades per day, $500 daily loss limit,
// 10% stop loss, confirmation required, blue-chip/ETF whitelist.
func DefaultRiskSettings() RiskSettings {
	return RiskSettings{
		MaxPositionSize:     100_000,
		MaxDailyTrades:      5,
		DailyLossLimit:      50_000,
		StopLossEnabled:     true,
		StopLossPercent:     10,
		RequireConfirmation: true,
		AllowedSymbols:      []string{"SPY", "QQQ", "IWM", "VTI", "AAPL", "MSFT", "GOOGL"},
	}
}

// RiskSettingsUpdate carries a partial settings change. Nil fields keep
// their prior values.
type RiskSettingsUpdate struct {
	MaxPositionSize     *int64    `json:"max_position_size" binding:"omitempty,gte=0"`
	MaxDailyTrades      *int      `json:"max_daily_trades" binding:"omitempty,gte=0"`
	DailyLossLimit      *int64    `json:"daily_loss_limit" binding:"omitempty,gte=0"`
	StopLossEnabled     *bool     `json:"stop_loss_enabled"`
	StopLossPercent     *float64  `json:"stop_loss_percent" binding:"omitempty,gte=0,lte=100"`
	RequireConfirmation *bool     `json:"require_confirmation"`
	AllowedSymbols      *[]string `json:"allowed_symbols" binding:"omitempty,dive,ticker"`
}

// DailyUsage holds the ephemeral per-day counters. Both reset to zero at
// local midnight. Loss is in cents.
type DailyUsage struct {
	TradeCount int   `json:"trade_count"`
	Loss       int64 `json:"loss"`
}
