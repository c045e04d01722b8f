package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/service"
)

// CatalogHandler serves the shared allergen catalog and educational
// resources, plus the admin-only write surface for both.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListAllergens returns the full catalog. Public data, no token required.
func (h *CatalogHandler) ListAllergens(c *gin.Context) {
	allergens, err := h.catalog.ListAllergens(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, allergens)
}

// GetAllergen returns a single catalog entry.
func (h *CatalogHandler) GetAllergen(c *gin.Context) {
	allergen, err := h.catalog.GetAllergen(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrAllergenNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Allergen not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, allergen)
}

// ListResources returns all educational resources. Content is returned
// verbatim; it is admin-curated trusted material.
func (h *CatalogHandler) ListResources(c *gin.Context) {
	resources, err := h.catalog.ListResources(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resources)
}

// UpsertAllergen creates or replaces a catalog entry. Admin only.
func (h *CatalogHandler) UpsertAllergen(c *gin.Context) {
	var allergen models.Allergen
	if err := c.ShouldBindJSON(&allergen); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.UpsertAllergen(c.Request.Context(), &allergen); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, allergen)
}

// UpsertResource creates or replaces an educational resource. Admin only.
func (h *CatalogHandler) UpsertResource(c *gin.Context) {
	var resource models.EducationalResource
	if err := c.ShouldBindJSON(&resource); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.UpsertResource(c.Request.Context(), &resource); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resource)
}
