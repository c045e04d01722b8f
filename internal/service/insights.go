package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/types"
)

// InsightsService aggregates a user's symptom log into simple exposure
// patterns: which sources keep coming up, which symptoms dominate, and
// where the severe reactions cluster.
type InsightsService struct {
	db *gorm.DB
}

func NewInsightsService(db *gorm.DB) *InsightsService {
	return &InsightsService{db: db}
}

const topSymptomLimit = 5

// ForUser builds the insights report from the user's full log history.
func (s *InsightsService) ForUser(ctx context.Context, userID uuid.UUID) (*types.InsightsReport, error) {
	var entries []models.LogEntry
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}

	report := &types.InsightsReport{
		TotalEntries:   len(entries),
		SeverityCounts: map[string]int{},
		TopSymptoms:    []types.SymptomCount{},
		Sources:        []types.SourceBreakdown{},
		Patterns:       []string{},
	}
	if len(entries) == 0 {
		return report, nil
	}

	symptomCounts := map[string]int{}
	sourceCounts := map[string]int{}
	sourceSevere := map[string]int{}

	for _, entry := range entries {
		report.SeverityCounts[string(entry.Severity)]++
		for _, sym := range entry.SymptomsExperienced {
			symptomCounts[sym]++
		}
		if entry.PotentialExposureSource != "" {
			sourceCounts[entry.PotentialExposureSource]++
			if entry.Severity == models.SeveritySevere {
				sourceSevere[entry.PotentialExposureSource]++
			}
		}
	}

	for sym, count := range symptomCounts {
		report.TopSymptoms = append(report.TopSymptoms, types.SymptomCount{Symptom: sym, Count: count})
	}
	sort.Slice(report.TopSymptoms, func(i, j int) bool {
		if report.TopSymptoms[i].Count != report.TopSymptoms[j].Count {
			return report.TopSymptoms[i].Count > report.TopSymptoms[j].Count
		}
		return report.TopSymptoms[i].Symptom < report.TopSymptoms[j].Symptom
	})
	if len(report.TopSymptoms) > topSymptomLimit {
		report.TopSymptoms = report.TopSymptoms[:topSymptomLimit]
	}

	for source, count := range sourceCounts {
		report.Sources = append(report.Sources, types.SourceBreakdown{
			Source:      source,
			Count:       count,
			SevereCount: sourceSevere[source],
		})
	}
	sort.Slice(report.Sources, func(i, j int) bool {
		if report.Sources[i].Count != report.Sources[j].Count {
			return report.Sources[i].Count > report.Sources[j].Count
		}
		return report.Sources[i].Source < report.Sources[j].Source
	})

	for _, src := range report.Sources {
		if src.Count >= 2 {
			report.Patterns = append(report.Patterns,
				fmt.Sprintf("%d reactions traced back to '%s'.", src.Count, src.Source))
		}
		if src.SevereCount >= 2 {
			report.Patterns = append(report.Patterns,
				fmt.Sprintf("Severe reactions cluster around '%s' (%d severe).", src.Source, src.SevereCount))
		}
	}
	if severe := report.SeverityCounts[string(models.SeveritySevere)]; severe > 0 && severe*2 >= len(entries) {
		report.Patterns = append(report.Patterns,
			"Half or more of your logged reactions were severe. Consider reviewing your emergency plan.")
	}

	return report, nil
}
