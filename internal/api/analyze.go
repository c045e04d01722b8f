package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/service"
	"github.com/safebite/safebite/internal/types"
)

// AnalyzeHandler exposes the naive text analyzer.
type AnalyzeHandler struct {
	analyzer *service.AnalyzerService
}

func NewAnalyzeHandler(analyzer *service.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

// Analyze scans submitted text against the catalog and the caller's
// declared allergens. Requires auth.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.Text, req.UserAllergens)
	if err != nil {
		if errors.Is(err, service.ErrNoText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "NLP analysis failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis_result": result})
}
