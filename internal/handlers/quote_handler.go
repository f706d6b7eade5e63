package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/services"
)

// QuoteHandler proxies market data requests to the configured provider.
type QuoteHandler struct {
	quoteService services.QuoteServicer
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService services.QuoteServicer) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// GetQuotes returns quotes for a comma-separated list of symbols.
// @Summary     Get quotes
// @Description Get current quotes for the given symbols; symbols with no data are listed as missing
// @Tags        quotes
// @Produce     json
// @Param       symbols query string true "Comma-separated ticker symbols" example(AAPL,MSFT)
// @Success     200 {object} services.QuoteBatch "Quotes (synthetic=true marks development data)"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     502 {object} ErrorResponse "Provider unavailable"
// @Router      /quotes [get]
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	raw := c.Query("symbols")
	if raw == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Query parameter symbols is required"))
		return
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "At least one symbol is required"))
		return
	}

	batch, err := h.quoteService.GetQuotes(c.Request.Context(), symbols)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}
