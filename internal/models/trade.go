package models

import (
	"math"
	"time"

	"papertrade/internal/uuid"

	"gorm.io/gorm"
)

// TradeSide indicates whether a trade bought or sold shares.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

// Trade is an executed paper trade, kept as an append-only history row.
// RealizedPnL is zero for buys and (price - buyPrice) * quantity for sells.
type Trade struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Side        TradeSide `gorm:"not null" json:"side"`
	Symbol      string    `gorm:"not null;index" json:"symbol"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	Price       int64     `gorm:"type:bigint;not null" json:"price"`
	RealizedPnL int64     `gorm:"type:bigint;not null;default:0" json:"realized_pnl"`
	PositionID  string    `gorm:"type:uuid;not null;index" json:"position_id"`
	ExecutedAt  time.Time `gorm:"not null" json:"executed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Trade) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}

// TradeValue returns quantity * price in cents. ok is false when the
// product overflows int64; callers must never let an overflowed (negative)
// product reach balance arithmetic or limit comparisons.
func TradeValue(quantity, price int64) (value int64, ok bool) {
	if quantity <= 0 || price <= 0 {
		return 0, false
	}
	if quantity > math.MaxInt64/price {
		return 0, false
	}
	return quantity * price, true
}
