package types

import (
	"github.com/safebite/safebite/internal/models"
)

// ProfilePatch is a field-level merge request for the user profile. Nil
// fields are left untouched on the stored record; only non-nil fields are
// written. Sending an empty (non-nil) slice clears that field explicitly.
type ProfilePatch struct {
	Allergens             *[]string                  `json:"allergens,omitempty"`
	EmergencyContacts     *[]models.EmergencyContact `json:"emergencyContacts,omitempty"`
	SecondaryRestrictions *string                    `json:"secondaryRestrictions,omitempty"`
	EmergencyPlan         *models.EmergencyPlan      `json:"emergencyPlan,omitempty"`
}

// AppendLogRequest is the payload for creating a log entry. The timestamp
// is always assigned server-side; clients cannot supply one.
type AppendLogRequest struct {
	FoodIntake              string   `json:"foodIntake"`
	SymptomsExperienced     []string `json:"symptomsExperienced"`
	Severity                string   `json:"severity"`
	PotentialExposureSource string   `json:"potentialExposureSource"`
}

// AnalyzeRequest carries free text plus the caller's allergen profile ids.
type AnalyzeRequest struct {
	Text          string   `json:"text"`
	UserAllergens []string `json:"userAllergens"`
}
