package models

import (
	"time"
)

// Allergen is a shared catalog entry. The catalog is read-only for users;
// rows are written by the admin surface only. The ID is a stable slug
// ("peanut", "tree_nut") referenced from profiles and analysis results.
type Allergen struct {
	ID                 string           `gorm:"size:64;primarykey" json:"id"`
	Name               string           `gorm:"size:100;not null" json:"name"`
	CommonNames        JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"commonNames"`
	HiddenSources      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"hiddenSources"`
	CrossReactiveFoods JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"crossReactiveFoods"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (Allergen) TableName() string {
	return "allergens"
}

// EducationalResource is admin-curated reading material. Content is rich
// text stored and returned verbatim; it is a trusted channel and renderers
// must treat it as such. AllergensCovered is admin-entered and may be
// missing or malformed, hence the tolerant array type.
type EducationalResource struct {
	ID               string              `gorm:"size:64;primarykey" json:"id"`
	Title            string              `gorm:"size:255;not null" json:"title"`
	Source           string              `gorm:"size:255" json:"source"`
	Content          string              `gorm:"type:text" json:"content"`
	AllergensCovered TolerantStringArray `gorm:"type:jsonb" json:"allergensCovered"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func (EducationalResource) TableName() string {
	return "educational_resources"
}

// RecallAlert is a recall or contamination notice, filtered per user by
// the allergens it names.
type RecallAlert struct {
	ID                string           `gorm:"size:64;primarykey" json:"id"`
	Type              string           `gorm:"size:32;not null" json:"type"`
	Title             string           `gorm:"size:255;not null" json:"title"`
	Description       string           `gorm:"type:text" json:"description"`
	RelevantAllergens JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"relevantAllergens"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (RecallAlert) TableName() string {
	return "recall_alerts"
}
