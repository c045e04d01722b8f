package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/types"
)

var (
	ErrFoodIntakeRequired = errors.New("foodIntake is required")
	ErrSymptomsRequired   = errors.New("at least one symptom is required")
)

// LogService handles the append-only symptom/exposure log. Entries are
// immutable once written: no update or delete exists.
type LogService struct {
	db  *gorm.DB
	pub Publisher
}

func NewLogService(db *gorm.DB, pub Publisher) *LogService {
	return &LogService{db: db, pub: pub}
}

// Append validates and inserts a log entry. The timestamp is assigned here
// at write time; any client-supplied value is ignored.
func (s *LogService) Append(ctx context.Context, userID uuid.UUID, req *types.AppendLogRequest) (*models.LogEntry, error) {
	if strings.TrimSpace(req.FoodIntake) == "" {
		return nil, ErrFoodIntakeRequired
	}

	symptoms := make([]string, 0, len(req.SymptomsExperienced))
	for _, sym := range req.SymptomsExperienced {
		if trimmed := strings.TrimSpace(sym); trimmed != "" {
			symptoms = append(symptoms, trimmed)
		}
	}
	if len(symptoms) == 0 {
		return nil, ErrSymptomsRequired
	}

	severity := models.Severity(req.Severity)
	if req.Severity == "" {
		severity = models.SeverityMild
	}
	if !severity.Valid() {
		return nil, fmt.Errorf("invalid severity %q", req.Severity)
	}

	entry := models.LogEntry{
		ID:                      uuid.New(),
		UserID:                  userID,
		FoodIntake:              strings.TrimSpace(req.FoodIntake),
		SymptomsExperienced:     models.JSONBStringArray(symptoms),
		Severity:                severity,
		PotentialExposureSource: strings.TrimSpace(req.PotentialExposureSource),
		Timestamp:               time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	if err := s.pub.Publish(ctx, docpath.UserLogs(userID.String())); err != nil {
		log.Printf("Failed to publish log change for %s: %v", userID, err)
	}

	return &entry, nil
}

// List returns all of a user's log entries in storage order. Consumers
// impose their own ordering; the wire makes no promise.
func (s *LogService) List(ctx context.Context, userID uuid.UUID) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
