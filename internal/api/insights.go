package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/service"
)

// InsightsHandler serves the symptom-pattern report.
type InsightsHandler struct {
	insights *service.InsightsService
}

func NewInsightsHandler(insights *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// Get returns aggregated patterns from the caller's log history.
func (h *InsightsHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := h.insights.ForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
