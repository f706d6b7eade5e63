package services

import (
	"context"
	"sync"
	"time"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"
	"papertrade/internal/marketdata"
	"papertrade/internal/models"
)

// quoteService serves quotes through a TTL cache and runs the periodic
// refresh loop that feeds fresh prices into the portfolio ledger.
type quoteService struct {
	mu         sync.RWMutex
	provider   marketdata.Provider
	trading    TradingServicer
	staleAfter time.Duration
	cache      map[string]models.Quote
}

// NewQuoteService creates a new QuoteServicer.
func NewQuoteService(provider marketdata.Provider, trading TradingServicer, staleAfter time.Duration) *quoteService {
	return &quoteService{
		provider:   provider,
		trading:    trading,
		staleAfter: staleAfter,
		cache:      make(map[string]models.Quote),
	}
}

// GetQuotes returns quotes for the requested symbols, serving cached
// entries that are still fresh and fetching the rest. Symbols the provider
// has no data for are reported in Missing; the whole call fails with
// QUOTES_UNAVAILABLE only when nothing could be served at all, so the UI
// can distinguish "error" from "no data for this symbol".
func (s *quoteService) GetQuotes(ctx context.Context, symbols []string) (*QuoteBatch, error) {
	if len(symbols) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "At least one symbol is required")
	}

	batch := &QuoteBatch{Synthetic: s.provider.Synthetic()}
	var toFetch []string

	now := time.Now()
	s.mu.RLock()
	for _, symbol := range symbols {
		cached, ok := s.cache[symbol]
		if ok && now.Sub(cached.RetrievedAt) < s.staleAfter {
			batch.Quotes = append(batch.Quotes, cached)
			continue
		}
		toFetch = append(toFetch, symbol)
	}
	s.mu.RUnlock()

	if len(toFetch) == 0 {
		return batch, nil
	}

	quotes, fetchErrors := s.provider.FetchQuotes(ctx, toFetch)
	s.storeQuotes(quotes)
	batch.Quotes = append(batch.Quotes, quotes...)

	for _, fetchErr := range fetchErrors {
		logger.Get().Warnw("quote fetch failed",
			"provider", s.provider.Name(),
			"symbol", fetchErr.Symbol,
			"error", fetchErr.Err.Error(),
		)
		// A stale cached quote still beats no quote.
		s.mu.RLock()
		cached, ok := s.cache[fetchErr.Symbol]
		s.mu.RUnlock()
		if ok {
			batch.Quotes = append(batch.Quotes, cached)
			continue
		}
		batch.Missing = append(batch.Missing, fetchErr.Symbol)
	}

	if len(batch.Quotes) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrQuotesUnavailable, fetchErrors[0])
	}
	return batch, nil
}

// StartRefreshLoop periodically fetches quotes for all open-position
// symbols and applies them to the ledger. Fetch failures are logged and
// skipped; positions keep their last known prices. The loop stops when ctx
// is cancelled.
func (s *quoteService) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refreshOnce(ctx)
			}
		}
	}()
}

// refreshOnce runs one refresh cycle.
func (s *quoteService) refreshOnce(ctx context.Context) {
	symbols := s.trading.PositionSymbols()
	if len(symbols) == 0 {
		return
	}

	quotes, fetchErrors := s.provider.FetchQuotes(ctx, symbols)
	for _, fetchErr := range fetchErrors {
		logger.Get().Warnw("price refresh fetch failed",
			"provider", s.provider.Name(),
			"symbol", fetchErr.Symbol,
			"error", fetchErr.Err.Error(),
		)
	}
	if len(quotes) == 0 {
		return
	}
	s.storeQuotes(quotes)

	priceBySymbol := make(map[string]int64, len(quotes))
	for _, q := range quotes {
		priceBySymbol[q.Symbol] = q.Price
	}
	if err := s.trading.RefreshPrices(priceBySymbol); err != nil {
		logger.Get().Errorw("failed to apply refreshed prices", "error", err.Error())
		return
	}
	logger.Get().Debugw("position prices refreshed", "symbols", len(priceBySymbol))
}

func (s *quoteService) storeQuotes(quotes []models.Quote) {
	if len(quotes) == 0 {
		return
	}
	s.mu.Lock()
	for _, q := range quotes {
		s.cache[q.Symbol] = q
	}
	s.mu.Unlock()
}
