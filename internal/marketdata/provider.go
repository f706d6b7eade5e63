// Package marketdata fetches current quotes from external data sources.
// The portfolio core treats providers as unreliable collaborators: fetches
// may fail, may omit symbols, and must never feed zero or null prices into
// P&L math.
package marketdata

import (
	"context"
	"fmt"

	"papertrade/internal/models"
)

// FetchError represents a failed quote fetch for a specific symbol.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch quote for %s: %v", e.Symbol, e.Err)
}

// Provider fetches current market quotes for a set of symbols.
type Provider interface {
	// Name returns the provider's display name (e.g., "Alpha Vantage").
	Name() string

	// Synthetic reports whether the provider fabricates data. The API
	// surfaces this so clients can tell development data from real quotes.
	Synthetic() bool

	// FetchQuotes fetches current quotes for the given symbols. It returns
	// as many quotes as possible plus a per-symbol error for each failure;
	// a transport-level failure yields an error for every symbol, never a
	// silently empty result.
	FetchQuotes(ctx context.Context, symbols []string) ([]models.Quote, []*FetchError)
}
