package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/types"
)

// ErrProfileNotFound is returned when a user has not saved a profile yet.
// Absence is a valid state, not a failure of the store.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileService handles the per-user profile document.
type ProfileService struct {
	db  *gorm.DB
	pub Publisher
}

func NewProfileService(db *gorm.DB, pub Publisher) *ProfileService {
	return &ProfileService{db: db, pub: pub}
}

// Get retrieves a user's profile. Returns ErrProfileNotFound when the
// document does not exist.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Merge applies a field-level merge to the profile, creating the document
// on first save. Only non-nil patch fields are written; everything else on
// the stored record is preserved.
func (s *ProfileService) Merge(ctx context.Context, userID uuid.UUID, patch *types.ProfilePatch) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{
			ID:     uuid.New(),
			UserID: userID,
		}
	} else if err != nil {
		return nil, err
	}

	if patch.Allergens != nil {
		profile.Allergens = models.JSONBStringArray(*patch.Allergens)
	}
	if patch.EmergencyContacts != nil {
		profile.EmergencyContacts = models.EmergencyContacts(*patch.EmergencyContacts)
	}
	if patch.SecondaryRestrictions != nil {
		profile.SecondaryRestrictions = *patch.SecondaryRestrictions
	}
	if patch.EmergencyPlan != nil {
		profile.EmergencyPlan = *patch.EmergencyPlan
	}

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}

	if err := s.pub.Publish(ctx, docpath.UserProfile(userID.String())); err != nil {
		log.Printf("Failed to publish profile change for %s: %v", userID, err)
	}

	return &profile, nil
}
