package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"papertrade/internal/services"
)

// PortfolioHandler handles portfolio snapshot and reset requests.
type PortfolioHandler struct {
	tradingService services.TradingServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(tradingService services.TradingServicer) *PortfolioHandler {
	return &PortfolioHandler{tradingService: tradingService}
}

// GetPortfolio returns the current portfolio snapshot.
// @Summary     Get portfolio
// @Description Get the current paper portfolio: cash, open positions, and derived totals
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} models.PortfolioSnapshot "Portfolio snapshot"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"portfolio": h.tradingService.GetPortfolio()})
}

// ResetPortfolio restores the initial cash endowment and clears positions.
// @Summary     Reset portfolio
// @Description Reset the paper portfolio to its initial cash endowment; confirmation is a UI concern
// @Tags        portfolio
// @Produce     json
// @Success     200 {object} models.PortfolioSnapshot "Portfolio after reset"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/reset [post]
func (h *PortfolioHandler) ResetPortfolio(c *gin.Context) {
	if err := h.tradingService.ResetPortfolio(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": h.tradingService.GetPortfolio()})
}
