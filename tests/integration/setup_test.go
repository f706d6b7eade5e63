package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"papertrade/internal/handlers"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/marketdata"
	"papertrade/internal/middleware"
	"papertrade/internal/models"
	"papertrade/internal/risk"
	"papertrade/internal/services"
	"papertrade/internal/store"
	"papertrade/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB        *gorm.DB
	Store     store.Store
	Evaluator *risk.Evaluator
	Provider  *scriptedProvider
	Router    *gin.Engine
}

// scriptedProvider serves fixed prices and can be flipped into a failing state.
type scriptedProvider struct {
	prices map[string]int64
	down   bool
}

func (p *scriptedProvider) Name() string    { return "scripted" }
func (p *scriptedProvider) Synthetic() bool { return true }

func (p *scriptedProvider) FetchQuotes(_ context.Context, symbols []string) ([]models.Quote, []*marketdata.FetchError) {
	var quotes []models.Quote
	var fetchErrors []*marketdata.FetchError
	for _, symbol := range symbols {
		if p.down {
			fetchErrors = append(fetchErrors, &marketdata.FetchError{Symbol: symbol, Err: errors.New("provider down")})
			continue
		}
		price, ok := p.prices[symbol]
		if !ok {
			fetchErrors = append(fetchErrors, &marketdata.FetchError{Symbol: symbol, Err: errors.New("no data")})
			continue
		}
		quotes = append(quotes, models.Quote{Symbol: symbol, Price: price})
	}
	return quotes, fetchErrors
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&store.Record{}, &models.Trade{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return buildApp(t, db)
}

// restartApp rebuilds the whole service stack over an existing database,
// simulating a server restart.
func restartApp(t *testing.T, app *testApp) *testApp {
	t.Helper()
	return buildApp(t, app.DB)
}

func buildApp(t *testing.T, db *gorm.DB) *testApp {
	t.Helper()

	st := store.NewGormStore(db)

	l, err := ledger.New(st)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	evaluator, err := risk.NewEvaluator(st)
	if err != nil {
		t.Fatalf("failed to create risk evaluator: %v", err)
	}

	provider := &scriptedProvider{prices: map[string]int64{
		"AAPL": 15_000,
		"MSFT": 42_000,
		"SPY":  58_000,
	}}

	progressService := services.NewProgressService(st)
	tradingService := services.NewTradingService(l, evaluator, db, progressService)
	quoteService := services.NewQuoteService(provider, tradingService, 0)

	portfolioHandler := handlers.NewPortfolioHandler(tradingService)
	tradeHandler := handlers.NewTradeHandler(tradingService)
	riskHandler := handlers.NewRiskHandler(evaluator)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	progressHandler := handlers.NewProgressHandler(progressService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.GET("/portfolio", portfolioHandler.GetPortfolio)
	v1.POST("/portfolio/reset", portfolioHandler.ResetPortfolio)
	v1.POST("/trades", tradeHandler.ExecuteBuy)
	v1.GET("/trades", tradeHandler.GetTradeHistory)
	v1.POST("/trades/validate", tradeHandler.ValidateTrade)
	v1.POST("/positions/:id/sell", tradeHandler.SellPosition)

	riskGroup := v1.Group("/risk")
	riskGroup.GET("/settings", riskHandler.GetSettings)
	riskGroup.PUT("/settings", riskHandler.UpdateSettings)
	riskGroup.POST("/settings/reset", riskHandler.ResetSettings)
	riskGroup.GET("/usage", riskHandler.GetUsage)

	v1.GET("/quotes", quoteHandler.GetQuotes)
	v1.GET("/progress", progressHandler.GetProgress)
	v1.POST("/progress/reset", progressHandler.ResetProgress)

	return &testApp{DB: db, Store: st, Evaluator: evaluator, Provider: provider, Router: router}
}

func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}
