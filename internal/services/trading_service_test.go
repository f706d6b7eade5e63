package services

import (
	"testing"

	"papertrade/internal/ledger"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/risk"
	"papertrade/internal/store"
	"papertrade/internal/testutil"

	"gorm.io/gorm"
)

// newTradingService wires a trading service over a fresh in-memory database.
func newTradingService(t *testing.T) (TradingServicer, *risk.Evaluator, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	st := store.NewGormStore(db)

	l, err := ledger.New(st)
	testutil.AssertNoError(t, err)
	e, err := risk.NewEvaluator(st)
	testutil.AssertNoError(t, err)

	return NewTradingService(l, e, db, NewProgressService(st)), e, db
}

func TestExecuteBuy(t *testing.T) {
	t.Run("clean_trade_executes", func(t *testing.T) {
		svc, e, db := newTradingService(t)

		result, violations, err := svc.ExecuteBuy("AAPL", 2, 15_000)
		testutil.AssertNoError(t, err)
		if len(violations) != 0 {
			t.Errorf("unexpected violations: %v", violations)
		}

		if result.Trade.Side != models.TradeSideBuy || result.Trade.Symbol != "AAPL" {
			t.Errorf("unexpected trade row: %+v", result.Trade)
		}
		if result.Portfolio.Cash != models.InitialCash-30_000 {
			t.Errorf("expected cash %d, got %d", models.InitialCash-30_000, result.Portfolio.Cash)
		}
		if len(result.Portfolio.Positions) != 1 {
			t.Errorf("expected 1 position, got %d", len(result.Portfolio.Positions))
		}

		// Counters and history updated exactly once.
		if usage := e.Usage(); usage.TradeCount != 1 {
			t.Errorf("expected trade count 1, got %d", usage.TradeCount)
		}
		var count int64
		testutil.AssertNoError(t, db.Model(&models.Trade{}).Count(&count).Error)
		if count != 1 {
			t.Errorf("expected 1 history row, got %d", count)
		}
	})

	t.Run("blocked_trade_leaves_state_unchanged", func(t *testing.T) {
		svc, e, db := newTradingService(t)

		// TSLA is not on the default whitelist.
		result, violations, err := svc.ExecuteBuy("TSLA", 1, 10_000)
		testutil.AssertAppError(t, err, "TRADE_BLOCKED")
		if result != nil {
			t.Error("expected nil result for a blocked trade")
		}
		testutil.AssertViolation(t, violations, models.ViolationSymbolNotAllowed)

		if cash := svc.GetPortfolio().Cash; cash != models.InitialCash {
			t.Errorf("cash changed on a blocked trade: %d", cash)
		}
		if usage := e.Usage(); usage.TradeCount != 0 {
			t.Errorf("blocked trade counted toward usage: %d", usage.TradeCount)
		}
		var count int64
		testutil.AssertNoError(t, db.Model(&models.Trade{}).Count(&count).Error)
		if count != 0 {
			t.Errorf("blocked trade produced a history row")
		}
	})

	t.Run("blocked_after_daily_limit", func(t *testing.T) {
		svc, _, _ := newTradingService(t)

		for i := 0; i < models.DefaultRiskSettings().MaxDailyTrades; i++ {
			_, _, err := svc.ExecuteBuy("AAPL", 1, 10_000)
			testutil.AssertNoError(t, err)
		}

		_, violations, err := svc.ExecuteBuy("AAPL", 1, 10_000)
		testutil.AssertAppError(t, err, "TRADE_BLOCKED")
		testutil.AssertViolation(t, violations, models.ViolationDailyTradeLimitReached)
	})
}

func TestExecuteSell(t *testing.T) {
	t.Run("realized_loss_feeds_daily_counter", func(t *testing.T) {
		svc, e, _ := newTradingService(t)

		buy, _, err := svc.ExecuteBuy("AAPL", 5, 15_000)
		testutil.AssertNoError(t, err)
		positionID := buy.Portfolio.Positions[0].ID

		// Sell all 5 at a $10 per-share loss.
		result, _, err := svc.ExecuteSell(positionID, 5, 14_000)
		testutil.AssertNoError(t, err)

		if result.Trade.RealizedPnL != -5_000 {
			t.Errorf("expected realized P&L -5000, got %d", result.Trade.RealizedPnL)
		}
		if usage := e.Usage(); usage.Loss != 5_000 {
			t.Errorf("expected daily loss 5000, got %d", usage.Loss)
		}
		if len(result.Portfolio.Positions) != 0 {
			t.Errorf("expected position removed, got %d positions", len(result.Portfolio.Positions))
		}
	})

	t.Run("sell_ignores_whitelist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := store.NewGormStore(db)

		// Buy while the symbol is allowed, then shrink the whitelist.
		l, err := ledger.New(st)
		testutil.AssertNoError(t, err)
		e, err := risk.NewEvaluator(st)
		testutil.AssertNoError(t, err)
		svc := NewTradingService(l, e, db, NewProgressService(st))

		buy, _, err := svc.ExecuteBuy("AAPL", 2, 10_000)
		testutil.AssertNoError(t, err)

		symbols := []string{"SPY"}
		_, err = e.UpdateSettings(models.RiskSettingsUpdate{AllowedSymbols: &symbols})
		testutil.AssertNoError(t, err)

		// The delisted position can still be sold.
		_, _, err = svc.ExecuteSell(buy.Portfolio.Positions[0].ID, 2, 10_000)
		testutil.AssertNoError(t, err)
	})

	t.Run("sell_blocked_by_loss_limit", func(t *testing.T) {
		svc, e, _ := newTradingService(t)

		buy, _, err := svc.ExecuteBuy("AAPL", 2, 10_000)
		testutil.AssertNoError(t, err)

		// Push the loss counter past the default $500 limit.
		e.RecordTrade(-50_000)

		_, violations, err := svc.ExecuteSell(buy.Portfolio.Positions[0].ID, 2, 10_000)
		testutil.AssertAppError(t, err, "TRADE_BLOCKED")
		testutil.AssertViolation(t, violations, models.ViolationDailyLossLimitReached)
	})

	t.Run("unknown_position", func(t *testing.T) {
		svc, _, _ := newTradingService(t)

		_, _, err := svc.ExecuteSell("missing-id", 1, 10_000)
		testutil.AssertAppError(t, err, "POSITION_NOT_FOUND")
	})
}

func TestPreviewTrade(t *testing.T) {
	svc, e, _ := newTradingService(t)

	violations := svc.PreviewTrade("TSLA", 100, 50_000)
	testutil.AssertViolation(t, violations, models.ViolationSymbolNotAllowed)
	testutil.AssertViolation(t, violations, models.ViolationPositionSizeExceeded)

	// Preview is free: no counters move, nothing executes.
	if usage := e.Usage(); usage.TradeCount != 0 {
		t.Errorf("preview mutated usage: %+v", usage)
	}
	if cash := svc.GetPortfolio().Cash; cash != models.InitialCash {
		t.Errorf("preview mutated cash: %d", cash)
	}
}

func TestResetPortfolio(t *testing.T) {
	svc, e, _ := newTradingService(t)

	_, _, err := svc.ExecuteBuy("AAPL", 2, 15_000)
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.ResetPortfolio())

	snapshot := svc.GetPortfolio()
	if snapshot.Cash != models.InitialCash || len(snapshot.Positions) != 0 {
		t.Errorf("portfolio not reset: %+v", snapshot)
	}
	// Daily counters survive the portfolio reset.
	if usage := e.Usage(); usage.TradeCount != 1 {
		t.Errorf("portfolio reset cleared risk usage: %+v", usage)
	}
}

func TestGetTradeHistory(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		svc, _, _ := newTradingService(t)

		for _, symbol := range []string{"AAPL", "MSFT", "SPY"} {
			_, _, err := svc.ExecuteBuy(symbol, 1, 10_000)
			testutil.AssertNoError(t, err)
		}

		page, err := svc.GetTradeHistory(pagination.PageRequest{}, "")
		testutil.AssertNoError(t, err)

		if page.TotalItems != 3 {
			t.Fatalf("expected 3 trades, got %d", page.TotalItems)
		}
		if page.Data[0].Symbol != "SPY" {
			t.Errorf("expected newest trade first, got %s", page.Data[0].Symbol)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		svc, _, _ := newTradingService(t)

		for i := 0; i < 3; i++ {
			_, _, err := svc.ExecuteBuy("AAPL", 1, 10_000)
			testutil.AssertNoError(t, err)
		}

		page, err := svc.GetTradeHistory(pagination.PageRequest{Page: 2, PageSize: 2}, "")
		testutil.AssertNoError(t, err)

		if len(page.Data) != 1 {
			t.Errorf("expected 1 item on page 2, got %d", len(page.Data))
		}
		if page.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", page.TotalPages)
		}
	})

	t.Run("filters_by_side", func(t *testing.T) {
		svc, _, _ := newTradingService(t)

		buy, _, err := svc.ExecuteBuy("AAPL", 5, 10_000)
		testutil.AssertNoError(t, err)
		_, _, err = svc.ExecuteSell(buy.Trade.PositionID, 2, 11_000)
		testutil.AssertNoError(t, err)

		sells, err := svc.GetTradeHistory(pagination.PageRequest{}, string(models.TradeSideSell))
		testutil.AssertNoError(t, err)
		if sells.TotalItems != 1 {
			t.Fatalf("expected 1 sell, got %d", sells.TotalItems)
		}
		if sells.Data[0].Side != models.TradeSideSell {
			t.Errorf("expected sell side, got %s", sells.Data[0].Side)
		}

		buys, err := svc.GetTradeHistory(pagination.PageRequest{}, string(models.TradeSideBuy))
		testutil.AssertNoError(t, err)
		if buys.TotalItems != 1 {
			t.Fatalf("expected 1 buy, got %d", buys.TotalItems)
		}

		all, err := svc.GetTradeHistory(pagination.PageRequest{}, "")
		testutil.AssertNoError(t, err)
		if all.TotalItems != 2 {
			t.Errorf("expected 2 trades without a filter, got %d", all.TotalItems)
		}
	})
}

func TestPositionSymbols(t *testing.T) {
	svc, _, _ := newTradingService(t)

	for _, symbol := range []string{"AAPL", "AAPL", "MSFT"} {
		_, _, err := svc.ExecuteBuy(symbol, 1, 10_000)
		testutil.AssertNoError(t, err)
	}

	if got := svc.PositionSymbols(); len(got) != 2 {
		t.Errorf("expected 2 distinct symbols, got %v", got)
	}
}
