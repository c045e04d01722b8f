package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safebite/safebite/internal/models"
)

// AlertService serves recall and contamination notices, filtered to the
// allergens a user actually has. A user without a profile (or with an
// empty allergen list) sees everything rather than nothing.
type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

// ListForUser returns alerts relevant to the user's profile allergens.
func (s *AlertService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.RecallAlert, error) {
	var alerts []models.RecallAlert
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&alerts).Error; err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(profile.Allergens) == 0) {
		return alerts, nil
	}
	if err != nil {
		return nil, err
	}

	mine := make(map[string]bool, len(profile.Allergens))
	for _, id := range profile.Allergens {
		mine[id] = true
	}

	filtered := make([]models.RecallAlert, 0, len(alerts))
	for _, alert := range alerts {
		for _, id := range alert.RelevantAllergens {
			if mine[id] {
				filtered = append(filtered, alert)
				break
			}
		}
	}
	return filtered, nil
}

// UpsertAlert creates or replaces an alert (admin only).
func (s *AlertService) UpsertAlert(ctx context.Context, alert *models.RecallAlert) error {
	if strings.TrimSpace(alert.ID) == "" || strings.TrimSpace(alert.Title) == "" {
		return errors.New("alert id and title are required")
	}
	if alert.Type != "Recall" && alert.Type != "Contamination" {
		return errors.New("alert type must be Recall or Contamination")
	}

	return s.db.WithContext(ctx).Save(alert).Error
}
