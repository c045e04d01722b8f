package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/service"
	"github.com/safebite/safebite/internal/types"
)

// LogHandler handles the append-only symptom/exposure log.
type LogHandler struct {
	logs *service.LogService
}

func NewLogHandler(logs *service.LogService) *LogHandler {
	return &LogHandler{logs: logs}
}

// List returns all of the caller's log entries. No ordering is promised
// on the wire; consumers sort locally.
func (h *LogHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	entries, err := h.logs.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Append inserts a new log entry with a server-assigned timestamp.
func (h *LogHandler) Append(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.AppendLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.logs.Append(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrFoodIntakeRequired) || errors.Is(err, service.ErrSymptomsRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Log added successfully",
		"id":      entry.ID.String(),
		"entry":   entry,
	})
}
