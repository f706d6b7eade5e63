package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/pagination"
	"papertrade/internal/services"
	"papertrade/internal/uuid"
)

// TradeHandler handles trade execution, validation previews, and history.
type TradeHandler struct {
	tradingService services.TradingServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradingService services.TradingServicer) *TradeHandler {
	return &TradeHandler{tradingService: tradingService}
}

// BuyRequest represents the request payload for executing a buy.
type BuyRequest struct {
	Symbol   string `json:"symbol" binding:"required,ticker"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
	Price    int64  `json:"price" binding:"required,gt=0"`
}

// SellRequest represents the request payload for selling from a position.
type SellRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
	Price    int64 `json:"price" binding:"required,gt=0"`
}

// TradeHistoryRequest represents the query parameters for listing trades.
type TradeHistoryRequest struct {
	pagination.PageRequest
	Side string `form:"side" binding:"omitempty,trade_side"`
}

// ExecuteBuy handles executing a risk-checked buy.
// @Summary     Execute buy
// @Description Validate a buy against the risk policy and execute it when no blocking violation exists
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       request body BuyRequest true "Trade details (price and quantity in cents/shares)"
// @Success     201 {object} services.TradeResult "Executed trade and updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient funds"
// @Failure     422 {object} ErrorResponse "Trade blocked by risk controls"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades [post]
func (h *TradeHandler) ExecuteBuy(c *gin.Context) {
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, violations, err := h.tradingService.ExecuteBuy(req.Symbol, req.Quantity, req.Price)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeBlocked) {
			respondBlocked(c, violations)
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ValidateTrade evaluates a proposed buy without executing it.
// @Summary     Validate trade
// @Description Return every risk violation a proposed buy would incur, without executing anything
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       request body BuyRequest true "Proposed trade"
// @Success     200 {object} map[string]any "Violation list (empty when the trade may proceed)"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /trades/validate [post]
func (h *TradeHandler) ValidateTrade(c *gin.Context) {
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	violations := h.tradingService.PreviewTrade(req.Symbol, req.Quantity, req.Price)
	c.JSON(http.StatusOK, gin.H{"violations": violations})
}

// SellPosition handles selling shares from an open position.
// @Summary     Sell position
// @Description Sell some or all shares of an open position; selling the full quantity removes it
// @Tags        trades
// @Accept      json
// @Produce     json
// @Param       id      path string      true "Position ID"
// @Param       request body SellRequest true "Sell details"
// @Success     201 {object} services.TradeResult "Executed trade and updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input or sell quantity"
// @Failure     404 {object} ErrorResponse "Position not found"
// @Failure     422 {object} ErrorResponse "Trade blocked by risk controls"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /positions/{id}/sell [post]
func (h *TradeHandler) SellPosition(c *gin.Context) {
	positionID := c.Param("id")
	if !uuid.IsValid(positionID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid position id"))
		return
	}

	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, violations, err := h.tradingService.ExecuteSell(positionID, req.Quantity, req.Price)
	if err != nil {
		if errors.Is(err, apperrors.ErrTradeBlocked) {
			respondBlocked(c, violations)
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetTradeHistory lists executed trades, newest first.
// @Summary     Get trade history
// @Description Get a paginated list of executed paper trades
// @Tags        trades
// @Produce     json
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       side      query string false "Filter by trade side (buy or sell)"
// @Success     200 {object} pagination.PageResponse[models.Trade] "Paginated trades"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /trades [get]
func (h *TradeHandler) GetTradeHistory(c *gin.Context) {
	var req TradeHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradingService.GetTradeHistory(req.PageRequest, req.Side)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
