package testutil

import (
	"testing"
	"time"

	"papertrade/internal/models"
	"papertrade/internal/uuid"

	"gorm.io/gorm"
)

// CreateTestTrade creates an executed trade history row.
func CreateTestTrade(t *testing.T, db *gorm.DB, side models.TradeSide, symbol string, quantity, price int64) *models.Trade {
	t.Helper()

	trade := &models.Trade{
		Side:       side,
		Symbol:     symbol,
		Quantity:   quantity,
		Price:      price,
		PositionID: uuid.New(),
		ExecutedAt: time.Now(),
	}
	if err := db.Create(trade).Error; err != nil {
		t.Fatalf("failed to create test trade: %v", err)
	}
	return trade
}

// PermissiveRiskSettings returns settings that allow large test trades:
// every limit is raised far above what the fixtures use.
func PermissiveRiskSettings() models.RiskSettings {
	settings := models.DefaultRiskSettings()
	settings.MaxPositionSize = 100_000_000
	settings.MaxDailyTrades = 1_000
	settings.DailyLossLimit = 100_000_000
	return settings
}
