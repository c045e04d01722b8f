package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/types"
)

var ErrNoText = errors.New("no text provided for analysis")

// AnalyzerService performs naive keyword-based allergen detection over free
// text. Every catalog name, common name, and hidden source becomes a
// lowercase phrase; a phrase appearing anywhere in the text marks its
// allergen as detected. Deliberately simple: the catalog is the whole
// model, there is no linguistic analysis.
type AnalyzerService struct {
	db *gorm.DB
}

func NewAnalyzerService(db *gorm.DB) *AnalyzerService {
	return &AnalyzerService{db: db}
}

// Analyze scans text against the catalog and cross-references the caller's
// own allergen ids. Detected ids always come back sorted so identical
// input yields identical output.
func (s *AnalyzerService) Analyze(ctx context.Context, text string, userAllergens []string) (*types.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	var catalog []models.Allergen
	if err := s.db.WithContext(ctx).Order("id").Find(&catalog).Error; err != nil {
		return nil, err
	}

	lowerText := strings.ToLower(text)

	detected := make(map[string]bool)
	byID := make(map[string]models.Allergen, len(catalog))
	for _, allergen := range catalog {
		byID[allergen.ID] = allergen
		for _, phrase := range allergenPhrases(allergen) {
			if phrase != "" && strings.Contains(lowerText, phrase) {
				detected[allergen.ID] = true
				break
			}
		}
	}

	detectedIDs := make([]string, 0, len(detected))
	for id := range detected {
		detectedIDs = append(detectedIDs, id)
	}
	sort.Strings(detectedIDs)

	inProfile := make(map[string]bool, len(userAllergens))
	for _, id := range userAllergens {
		inProfile[id] = true
	}

	issues := []types.AnalysisIssue{}
	for _, id := range detectedIDs {
		allergen := byID[id]

		if inProfile[id] {
			issues = append(issues, types.AnalysisIssue{
				AllergenID: id,
				Name:       allergen.Name,
				Type:       types.IssueDirectMatch,
				Reason:     fmt.Sprintf("'%s' detected and is in your profile.", allergen.Name),
			})
		}

		for _, crossFood := range allergen.CrossReactiveFoods {
			if strings.Contains(lowerText, strings.ToLower(crossFood)) {
				issues = append(issues, types.AnalysisIssue{
					AllergenID: id,
					Name:       allergen.Name,
					Type:       types.IssueCrossReactivity,
					Reason:     fmt.Sprintf("Potential cross-reactivity with '%s' related to '%s'.", crossFood, allergen.Name),
				})
			}
		}
	}

	return &types.AnalysisResult{
		DetectedIngredients:    detectedIDs,
		PotentialAllergyIssues: issues,
	}, nil
}

func allergenPhrases(a models.Allergen) []string {
	phrases := make([]string, 0, 1+len(a.CommonNames)+len(a.HiddenSources))
	phrases = append(phrases, strings.ToLower(a.Name))
	for _, n := range a.CommonNames {
		phrases = append(phrases, strings.ToLower(n))
	}
	for _, n := range a.HiddenSources {
		phrases = append(phrases, strings.ToLower(n))
	}
	return phrases
}
