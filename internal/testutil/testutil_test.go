package testutil_test

import (
	"testing"

	"papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify both tables exist by doing a simple count query on each.
	var count int64
	for _, table := range []string{"snapshots", "trades"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestStore(t *testing.T) {
	st := testutil.SetupTestStore(t)

	testutil.AssertNoError(t, st.Save("k", map[string]int{"v": 1}))

	var loaded map[string]int
	found, err := st.Load("k", &loaded)
	testutil.AssertNoError(t, err)
	if !found || loaded["v"] != 1 {
		t.Errorf("expected round trip, got found=%v %v", found, loaded)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	trade := testutil.CreateTestTrade(t, db, models.TradeSideBuy, "AAPL", 10, 15_000)
	if trade.ID == "" {
		t.Fatal("trade should have a generated ID")
	}
	if trade.Price != 15_000 {
		t.Errorf("expected price 15000, got %d", trade.Price)
	}

	settings := testutil.PermissiveRiskSettings()
	if settings.MaxPositionSize <= models.DefaultRiskSettings().MaxPositionSize {
		t.Error("permissive settings should raise the position size limit")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrPositionNotFound, "custom message")
	testutil.AssertAppError(t, err, "POSITION_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}

func TestAssertViolation(t *testing.T) {
	violations := []models.RiskViolation{
		{Kind: models.ViolationInsufficientFunds, Severity: models.SeverityError},
	}
	testutil.AssertViolation(t, violations, models.ViolationInsufficientFunds)
	testutil.AssertNoViolation(t, violations, models.ViolationSymbolNotAllowed)
}
