package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"papertrade/internal/models"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// globalQuoteResponse is the Alpha Vantage GLOBAL_QUOTE payload. The API
// names fields with numeric prefixes; an empty "Global Quote" object is how
// it reports an unknown symbol.
type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
	Note        string            `json:"Note"`
	ErrorMsg    string            `json:"Error Message"`
}

// AlphaVantageProvider fetches quotes from the Alpha Vantage GLOBAL_QUOTE
// endpoint, one request per symbol.
type AlphaVantageProvider struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string // overridable for tests
}

// NewAlphaVantageProvider creates an Alpha Vantage quote provider.
func NewAlphaVantageProvider(httpClient *http.Client, apiKey string) *AlphaVantageProvider {
	return &AlphaVantageProvider{httpClient: httpClient, apiKey: apiKey, baseURL: alphaVantageBaseURL}
}

// Name returns the provider's display name.
func (p *AlphaVantageProvider) Name() string { return "Alpha Vantage" }

// Synthetic returns false: this provider serves real market data.
func (p *AlphaVantageProvider) Synthetic() bool { return false }

// FetchQuotes fetches current quotes from Alpha Vantage.
func (p *AlphaVantageProvider) FetchQuotes(ctx context.Context, symbols []string) ([]models.Quote, []*FetchError) {
	var quotes []models.Quote
	var fetchErrors []*FetchError
	now := time.Now().UTC()

	for _, symbol := range symbols {
		quote, err := p.fetchQuote(ctx, symbol, now)
		if err != nil {
			fetchErrors = append(fetchErrors, &FetchError{Symbol: symbol, Err: err})
			continue
		}
		quotes = append(quotes, *quote)
	}

	return quotes, fetchErrors
}

// fetchQuote fetches and parses a single GLOBAL_QUOTE response.
func (p *AlphaVantageProvider) fetchQuote(ctx context.Context, symbol string, now time.Time) (*models.Quote, error) {
	query := url.Values{}
	query.Set("function", "GLOBAL_QUOTE")
	query.Set("symbol", symbol)
	query.Set("apikey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var quoteResp globalQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quoteResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if quoteResp.ErrorMsg != "" {
		return nil, fmt.Errorf("provider error: %s", quoteResp.ErrorMsg)
	}
	if quoteResp.Note != "" {
		// Rate-limit responses carry a "Note" instead of a quote.
		return nil, fmt.Errorf("provider throttled: %s", quoteResp.Note)
	}
	if len(quoteResp.GlobalQuote) == 0 {
		return nil, fmt.Errorf("no data for symbol %s", symbol)
	}

	price, err := parseQuoteField(quoteResp.GlobalQuote, "05. price")
	if err != nil {
		return nil, err
	}
	if price == 0 {
		return nil, fmt.Errorf("zero price for %s", symbol)
	}
	change, err := parseQuoteField(quoteResp.GlobalQuote, "09. change")
	if err != nil {
		return nil, err
	}
	changePercent, err := parsePercentField(quoteResp.GlobalQuote, "10. change percent")
	if err != nil {
		return nil, err
	}

	return &models.Quote{
		Symbol:        symbol,
		Price:         toCents(price),
		Change:        toCents(change),
		ChangePercent: changePercent,
		RetrievedAt:   now,
	}, nil
}

func parseQuoteField(quote map[string]string, field string) (float64, error) {
	raw, ok := quote[field]
	if !ok {
		return 0, fmt.Errorf("missing field %q", field)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing field %q: %w", field, err)
	}
	return value, nil
}

func parsePercentField(quote map[string]string, field string) (float64, error) {
	raw, ok := quote[field]
	if !ok {
		return 0, fmt.Errorf("missing field %q", field)
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing field %q: %w", field, err)
	}
	return value, nil
}

func toCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}
