package marketdata

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"papertrade/internal/models"
)

// SyntheticProvider fabricates plausible quotes for development when no
// quote-API key is configured. Prices are a deterministic function of the
// symbol with a slow sinusoidal drift, so repeated fetches look like a
// moving market but tests and demos stay reproducible.
type SyntheticProvider struct {
	now func() time.Time
}

// NewSyntheticProvider creates the development fallback provider.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{now: time.Now}
}

// Name returns the provider's display name.
func (p *SyntheticProvider) Name() string { return "Synthetic" }

// Synthetic returns true: every quote from this provider is fabricated.
func (p *SyntheticProvider) Synthetic() bool { return true }

// FetchQuotes generates quotes for all requested symbols. It never fails.
func (p *SyntheticProvider) FetchQuotes(_ context.Context, symbols []string) ([]models.Quote, []*FetchError) {
	now := p.now().UTC()
	quotes := make([]models.Quote, 0, len(symbols))

	for _, symbol := range symbols {
		base := basePriceCents(symbol)

		// One full cycle roughly every 40 minutes, amplitude ~2% of base.
		phase := float64(now.Unix()%2400) / 2400 * 2 * math.Pi
		drift := math.Sin(phase+float64(base%7)) * 0.02

		price := int64(float64(base) * (1 + drift))
		change := price - base
		changePercent := float64(change) / float64(base) * 100

		quotes = append(quotes, models.Quote{
			Symbol:        symbol,
			Price:         price,
			Change:        change,
			ChangePercent: changePercent,
			RetrievedAt:   now,
		})
	}
	return quotes, nil
}

// basePriceCents maps a symbol to a stable pseudo-price between $100 and $600.
func basePriceCents(symbol string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return 10_000 + int64(h.Sum32()%50_000)
}
