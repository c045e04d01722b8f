package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
)

var ErrAllergenNotFound = errors.New("allergen not found")

// CatalogService serves the shared allergen catalog and educational
// resources. Both collections are read-only for users; writes come through
// the admin surface and publish a change on the global path.
type CatalogService struct {
	db  *gorm.DB
	pub Publisher
}

func NewCatalogService(db *gorm.DB, pub Publisher) *CatalogService {
	return &CatalogService{db: db, pub: pub}
}

// ListAllergens returns the full catalog ordered by id for stable output.
func (s *CatalogService) ListAllergens(ctx context.Context) ([]models.Allergen, error) {
	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).Order("id").Find(&allergens).Error; err != nil {
		return nil, err
	}
	return allergens, nil
}

// GetAllergen returns a single catalog entry by id.
func (s *CatalogService) GetAllergen(ctx context.Context, id string) (*models.Allergen, error) {
	var allergen models.Allergen
	if err := s.db.WithContext(ctx).First(&allergen, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAllergenNotFound
		}
		return nil, err
	}
	return &allergen, nil
}

// ListResources returns all educational resources ordered by id.
func (s *CatalogService) ListResources(ctx context.Context) ([]models.EducationalResource, error) {
	var resources []models.EducationalResource
	if err := s.db.WithContext(ctx).Order("id").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// UpsertAllergen creates or replaces a catalog entry (admin only).
func (s *CatalogService) UpsertAllergen(ctx context.Context, allergen *models.Allergen) error {
	if strings.TrimSpace(allergen.ID) == "" || strings.TrimSpace(allergen.Name) == "" {
		return errors.New("allergen id and name are required")
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(allergen).Error
	if err != nil {
		return err
	}

	if err := s.pub.Publish(ctx, docpath.Allergens); err != nil {
		log.Printf("Failed to publish allergen catalog change: %v", err)
	}
	return nil
}

// UpsertResource creates or replaces an educational resource (admin only).
// Content is stored verbatim: this is a trusted channel curated by admins.
func (s *CatalogService) UpsertResource(ctx context.Context, resource *models.EducationalResource) error {
	if strings.TrimSpace(resource.ID) == "" || strings.TrimSpace(resource.Title) == "" {
		return errors.New("resource id and title are required")
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(resource).Error
	if err != nil {
		return err
	}

	if err := s.pub.Publish(ctx, docpath.EducationalResources); err != nil {
		log.Printf("Failed to publish resource change: %v", err)
	}
	return nil
}
