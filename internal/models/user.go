package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an identity record. Sessions are anonymous by default: a row is
// created the first time a client bootstraps and lives for as long as the
// client keeps its token.
type User struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	Anonymous bool           `gorm:"not null;default:true" json:"anonymous"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EmergencyContact is a single name/phone pair on a profile.
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// EmergencyContacts stores the ordered contact list as JSONB.
type EmergencyContacts []EmergencyContact

func (c EmergencyContacts) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	return json.Marshal(c)
}

func (c *EmergencyContacts) Scan(value interface{}) error {
	if value == nil {
		*c = EmergencyContacts{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// EmergencyPlan holds the free-text action plan fields.
type EmergencyPlan struct {
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

func (p EmergencyPlan) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *EmergencyPlan) Scan(value interface{}) error {
	if value == nil {
		*p = EmergencyPlan{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// UserProfile is the single allergy-profile document per user. It does not
// exist until the first save; absence is a valid state, not an error. Saves
// are field-level merges: fields missing from the request are preserved.
type UserProfile struct {
	ID                    uuid.UUID         `gorm:"type:varchar(36);primarykey" json:"-"`
	UserID                uuid.UUID         `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Allergens             JSONBStringArray  `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	EmergencyContacts     EmergencyContacts `gorm:"type:jsonb;not null;default:'[]'" json:"emergencyContacts"`
	SecondaryRestrictions string            `gorm:"type:text" json:"secondaryRestrictions"`
	EmergencyPlan         EmergencyPlan     `gorm:"type:jsonb;not null;default:'{}'" json:"emergencyPlan"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
