package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/risk"
)

// RiskHandler handles risk settings and daily usage requests.
type RiskHandler struct {
	evaluator *risk.Evaluator
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(evaluator *risk.Evaluator) *RiskHandler {
	return &RiskHandler{evaluator: evaluator}
}

// GetSettings returns the current risk settings.
// @Summary     Get risk settings
// @Description Get the current risk-control configuration
// @Tags        risk
// @Produce     json
// @Success     200 {object} models.RiskSettings "Current settings"
// @Router      /risk/settings [get]
func (h *RiskHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.evaluator.Settings()})
}

// UpdateSettings merges a partial settings change.
// @Summary     Update risk settings
// @Description Merge the provided fields into the current risk settings; unspecified fields keep prior values
// @Tags        risk
// @Accept      json
// @Produce     json
// @Param       request body models.RiskSettingsUpdate true "Partial settings change"
// @Success     200 {object} models.RiskSettings "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /risk/settings [put]
func (h *RiskHandler) UpdateSettings(c *gin.Context) {
	var req models.RiskSettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.evaluator.UpdateSettings(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// ResetSettings restores the built-in defaults and zeroes daily counters.
// @Summary     Reset risk settings
// @Description Restore built-in conservative defaults and zero the daily counters
// @Tags        risk
// @Produce     json
// @Success     200 {object} models.RiskSettings "Default settings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /risk/settings/reset [post]
func (h *RiskHandler) ResetSettings(c *gin.Context) {
	settings, err := h.evaluator.ResetToDefaults()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// GetUsage returns the daily trade count and cumulative loss.
// @Summary     Get daily usage
// @Description Get today's trade count and cumulative realized loss
// @Tags        risk
// @Produce     json
// @Success     200 {object} models.DailyUsage "Daily counters"
// @Router      /risk/usage [get]
func (h *RiskHandler) GetUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"usage": h.evaluator.Usage()})
}
