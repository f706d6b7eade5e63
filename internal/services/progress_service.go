package services

import (
	"sync"

	"papertrade/internal/models"
	"papertrade/internal/store"
)

// persistedProgress is the flat progress record written to the store.
type persistedProgress struct {
	CompletedTrades int `json:"completed_trades"`
}

// progressService tracks the onboarding milestone: how many paper trades
// the user has completed out of the required count.
type progressService struct {
	mu    sync.Mutex
	store store.Store
}

// NewProgressService creates a new ProgressServicer.
func NewProgressService(st store.Store) ProgressServicer {
	return &progressService{store: st}
}

// Get returns the current onboarding progress. A missing or malformed
// record counts as zero completed trades.
func (s *progressService) Get() (models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// RecordCompletedTrade increments the completed-trades counter. The counter
// stops at the milestone; trades after that leave it unchanged.
func (s *progressService) RecordCompletedTrade() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.loadLocked()
	if err != nil {
		return err
	}
	if progress.CompletedTrades >= models.RequiredTrades {
		return nil
	}
	return s.store.Save(store.KeyProgress, persistedProgress{
		CompletedTrades: progress.CompletedTrades + 1,
	})
}

// Reset zeroes the completed-trades counter.
func (s *progressService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(store.KeyProgress, persistedProgress{})
}

func (s *progressService) loadLocked() (models.Progress, error) {
	var saved persistedProgress
	if _, err := s.store.Load(store.KeyProgress, &saved); err != nil {
		return models.Progress{}, err
	}
	return models.Progress{
		CompletedTrades: saved.CompletedTrades,
		RequiredTrades:  models.RequiredTrades,
		Complete:        saved.CompletedTrades >= models.RequiredTrades,
	}, nil
}
