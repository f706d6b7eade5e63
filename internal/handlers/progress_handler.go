package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"papertrade/internal/services"
)

// ProgressHandler handles onboarding progress requests.
type ProgressHandler struct {
	progressService services.ProgressServicer
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService services.ProgressServicer) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetProgress returns the onboarding progress counter.
// @Summary     Get progress
// @Description Get completed paper trades toward the onboarding milestone
// @Tags        progress
// @Produce     json
// @Success     200 {object} models.Progress "Current progress"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	progress, err := h.progressService.Get()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// ResetProgress zeroes the completed-trades counter.
// @Summary     Reset progress
// @Description Zero the onboarding progress counter
// @Tags        progress
// @Produce     json
// @Success     200 {object} models.Progress "Progress after reset"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /progress/reset [post]
func (h *ProgressHandler) ResetProgress(c *gin.Context) {
	if err := h.progressService.Reset(); err != nil {
		respondWithError(c, err)
		return
	}
	progress, err := h.progressService.Get()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
