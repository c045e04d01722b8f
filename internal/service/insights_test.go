package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/safebite/internal/service"
	"github.com/safebite/safebite/internal/testhelpers"
	"github.com/safebite/safebite/internal/types"
)

func TestInsightsEmptyHistory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewInsightsService(db)

	report, err := svc.ForUser(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalEntries)
	assert.Empty(t, report.TopSymptoms)
	assert.Empty(t, report.Patterns)
}

func TestInsightsAggregatesHistory(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	logs := service.NewLogService(db, service.NopPublisher{})
	userID := uuid.New()
	ctx := context.Background()

	appends := []types.AppendLogRequest{
		{FoodIntake: "Pad thai", SymptomsExperienced: []string{"Hives", "Swelling"}, Severity: "Severe", PotentialExposureSource: "Restaurant"},
		{FoodIntake: "Satay skewers", SymptomsExperienced: []string{"Hives"}, Severity: "Severe", PotentialExposureSource: "Restaurant"},
		{FoodIntake: "Toast", SymptomsExperienced: []string{"Itching"}, Severity: "Mild", PotentialExposureSource: "Home"},
	}
	for i := range appends {
		_, err := logs.Append(ctx, userID, &appends[i])
		require.NoError(t, err)
	}

	report, err := service.NewInsightsService(db).ForUser(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalEntries)
	assert.Equal(t, 2, report.SeverityCounts["Severe"])
	assert.Equal(t, 1, report.SeverityCounts["Mild"])

	require.NotEmpty(t, report.TopSymptoms)
	assert.Equal(t, "Hives", report.TopSymptoms[0].Symptom)
	assert.Equal(t, 2, report.TopSymptoms[0].Count)

	require.NotEmpty(t, report.Sources)
	assert.Equal(t, "Restaurant", report.Sources[0].Source)
	assert.Equal(t, 2, report.Sources[0].Count)
	assert.Equal(t, 2, report.Sources[0].SevereCount)

	assert.Contains(t, report.Patterns, "2 reactions traced back to 'Restaurant'.")
	assert.Contains(t, report.Patterns, "Severe reactions cluster around 'Restaurant' (2 severe).")
	assert.Contains(t, report.Patterns, "Half or more of your logged reactions were severe. Consider reviewing your emergency plan.")
}

func TestInsightsDeterministicOrdering(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	logs := service.NewLogService(db, service.NopPublisher{})
	userID := uuid.New()
	ctx := context.Background()

	for _, source := range []string{"Bakery", "Cafe"} {
		_, err := logs.Append(ctx, userID, &types.AppendLogRequest{
			FoodIntake:              "Snack",
			SymptomsExperienced:     []string{"Itching"},
			PotentialExposureSource: source,
		})
		require.NoError(t, err)
	}

	svc := service.NewInsightsService(db)
	first, err := svc.ForUser(ctx, userID)
	require.NoError(t, err)
	second, err := svc.ForUser(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Tied counts fall back to name order.
	assert.Equal(t, "Bakery", first.Sources[0].Source)
}
