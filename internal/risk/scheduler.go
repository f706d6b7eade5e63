package risk

import (
	"context"
	"time"

	"papertrade/internal/logger"
)

// ResetScheduler arms a one-shot timer for the next local midnight, fires
// the evaluator's daily reset, and re-arms itself. A repeating interval
// would drift because the delta to midnight changes every day.
type ResetScheduler struct {
	evaluator *Evaluator
	now       func() time.Time
	cancel    context.CancelFunc
	done      chan struct{}
}

// NewResetScheduler creates a scheduler for the given evaluator.
func NewResetScheduler(evaluator *Evaluator) *ResetScheduler {
	return &ResetScheduler{
		evaluator: evaluator,
		now:       time.Now,
	}
}

// Start launches the scheduler goroutine. It runs until Stop is called.
func (s *ResetScheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			delay := NextMidnightDelay(s.now())
			timer := time.NewTimer(delay)
			logger.Get().Debugw("daily reset armed", "fires_in", delay.String())

			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				s.evaluator.DailyReset()
				logger.Get().Infow("daily risk counters reset")
			}
		}
	}()
}

// Stop cancels the armed timer and waits for the scheduler goroutine to
// exit. Safe to call once after Start; required on teardown so re-created
// evaluators do not leak timers.
func (s *ResetScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// NextMidnightDelay returns the duration from now until the next local
// midnight boundary.
func NextMidnightDelay(now time.Time) time.Duration {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}
