package store

import (
	"encoding/json"
	"errors"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"

	"gorm.io/gorm"
)

// Record is a single persisted snapshot row.
type Record struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Data      []byte    `gorm:"not null" json:"data"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (Record) TableName() string { return "snapshots" }

// gormStore implements Store on a GORM-managed snapshots table.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given database.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Load reads and unmarshals the record for key. Missing records return
// (false, nil). Malformed records are logged and treated as missing, so
// callers initialize from defaults rather than failing.
func (s *gormStore) Load(key string, into any) (bool, error) {
	var record Record
	if err := s.db.First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := json.Unmarshal(record.Data, into); err != nil {
		logger.Get().Warnw("discarding malformed snapshot record",
			"key", key,
			"error", err.Error(),
		)
		return false, nil
	}
	return true, nil
}

// Save marshals value and upserts the record for key.
func (s *gormStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	record := Record{Key: key, Data: data, UpdatedAt: time.Now()}
	if err := s.db.Save(&record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Delete removes the record for key.
func (s *gormStore) Delete(key string) error {
	if err := s.db.Delete(&Record{}, "key = ?", key).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
