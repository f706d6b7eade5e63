package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/handlers"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/marketdata"
	"papertrade/internal/middleware"
	"papertrade/internal/risk"
	"papertrade/internal/services"
	"papertrade/internal/store"
	"papertrade/internal/validator"

	_ "papertrade/internal/docs" // Import swagger docs
)

// @title           Papertrade API
// @version         1.0
// @description     Papertrade is an educational paper-trading backend: a simulated portfolio with virtual cash, configurable risk-control guardrails, and a market-data proxy.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open database and migrate schema
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Persistence port and core state
	db := dbManager.DB()
	snapshots := store.NewGormStore(db)

	portfolioLedger, err := ledger.New(snapshots)
	if err != nil {
		return fmt.Errorf("failed to restore portfolio: %w", err)
	}
	evaluator, err := risk.NewEvaluator(snapshots)
	if err != nil {
		return fmt.Errorf("failed to restore risk settings: %w", err)
	}

	// Market data provider: live Alpha Vantage when a key is configured,
	// otherwise the synthetic development fallback (config.Load already
	// rejected the unconfigured case unless the fallback is allowed).
	var provider marketdata.Provider
	if appConfig.AlphaVantageAPIKey != "" {
		provider = marketdata.NewAlphaVantageProvider(&http.Client{Timeout: appConfig.RequestTimeout}, appConfig.AlphaVantageAPIKey)
	} else {
		provider = marketdata.NewSyntheticProvider()
		log.Warn("No quote-API key configured; serving synthetic market data")
	}

	// Initialize services
	progressService := services.NewProgressService(snapshots)
	tradingService := services.NewTradingService(portfolioLedger, evaluator, db, progressService)
	quoteService := services.NewQuoteService(provider, tradingService, appConfig.QuoteStaleAfter)

	// Background work: price refresh loop and the midnight usage reset
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	quoteService.StartRefreshLoop(ctx, appConfig.QuoteRefreshInterval)

	resetScheduler := risk.NewResetScheduler(evaluator)
	resetScheduler.Start()
	defer resetScheduler.Stop()

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(tradingService)
	tradeHandler := handlers.NewTradeHandler(tradingService)
	riskHandler := handlers.NewRiskHandler(evaluator)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	progressHandler := handlers.NewProgressHandler(progressService)

	// Register custom binding validators
	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Portfolio routes
	v1.GET("/portfolio", portfolioHandler.GetPortfolio)
	v1.POST("/portfolio/reset", portfolioHandler.ResetPortfolio)

	// Trade routes
	v1.POST("/trades", tradeHandler.ExecuteBuy)
	v1.GET("/trades", tradeHandler.GetTradeHistory)
	v1.POST("/trades/validate", tradeHandler.ValidateTrade)
	v1.POST("/positions/:id/sell", tradeHandler.SellPosition)

	// Risk routes
	riskGroup := v1.Group("/risk")
	riskGroup.GET("/settings", riskHandler.GetSettings)
	riskGroup.PUT("/settings", riskHandler.UpdateSettings)
	riskGroup.POST("/settings/reset", riskHandler.ResetSettings)
	riskGroup.GET("/usage", riskHandler.GetUsage)

	// Quote proxy routes
	v1.GET("/quotes", quoteHandler.GetQuotes)

	// Progress routes
	v1.GET("/progress", progressHandler.GetProgress)
	v1.POST("/progress/reset", progressHandler.ResetProgress)

	log.Infof("Starting papertrade backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)

	server := &http.Server{Addr: ":" + appConfig.Port, Handler: router}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
