package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/service"
)

// AlertHandler serves recall/contamination alerts.
type AlertHandler struct {
	alerts *service.AlertService
}

func NewAlertHandler(alerts *service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// List returns alerts filtered by the caller's profile allergens.
func (h *AlertHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	alerts, err := h.alerts.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// Upsert creates or replaces an alert. Admin only.
func (h *AlertHandler) Upsert(c *gin.Context) {
	var alert models.RecallAlert
	if err := c.ShouldBindJSON(&alert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.alerts.UpsertAlert(c.Request.Context(), &alert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, alert)
}
