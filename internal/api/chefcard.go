package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/internal/chefcard"
	"github.com/safebite/safebite/internal/middleware"
	"github.com/safebite/safebite/internal/service"
)

// ChefCardHandler renders the chef card server-side from the stored
// profile. The client can also generate the identical card locally from
// its mirrors; both paths share the same pure generator.
type ChefCardHandler struct {
	profiles *service.ProfileService
	catalog  *service.CatalogService
}

func NewChefCardHandler(profiles *service.ProfileService, catalog *service.CatalogService) *ChefCardHandler {
	return &ChefCardHandler{profiles: profiles, catalog: catalog}
}

// Get returns the generated card text for the caller.
func (h *ChefCardHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found. Please create a profile first."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(profile.Allergens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No allergies found in profile to generate a card."})
		return
	}

	catalog, err := h.catalog.ListAllergens(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Chef card generated successfully.",
		"card_text": chefcard.Generate(profile, catalog),
	})
}
