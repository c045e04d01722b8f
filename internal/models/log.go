package models

import (
	"time"

	"github.com/google/uuid"
)

// Severity classifies a logged reaction.
type Severity string

const (
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// Valid reports whether s is one of the known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// LogEntry is a symptom/exposure record. Entries are append-only: there is
// no update or delete path, and the timestamp is assigned at write time by
// the server, never taken from the client.
type LogEntry struct {
	ID                      uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID                  uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"user_id"`
	FoodIntake              string           `gorm:"type:text;not null" json:"foodIntake"`
	SymptomsExperienced     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"symptomsExperienced"`
	Severity                Severity         `gorm:"size:20;not null;default:'Mild'" json:"severity"`
	PotentialExposureSource string           `gorm:"type:text" json:"potentialExposureSource"`
	Timestamp               time.Time        `gorm:"not null;index" json:"timestamp"`
	CreatedAt               time.Time        `json:"created_at"`
}

func (LogEntry) TableName() string {
	return "log_entries"
}
