package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/service"
)

// AuthHandler handles session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Anonymous creates an anonymous session and returns its token. This is
// the client's bootstrap call; the returned user id is stable for the
// session's lifetime.
func (h *AuthHandler) Anonymous(c *gin.Context) {
	token, userID, err := h.auth.CreateAnonymousSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"user_id": userID.String(),
	})
}

// SignOut revokes the presented token. Requires auth.
func (h *AuthHandler) SignOut(c *gin.Context) {
	tokenVal, exists := c.Get(middleware.ContextToken)
	token, ok := tokenVal.(string)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.auth.SignOut(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
