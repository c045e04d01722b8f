package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/service"
	"github.com/safebite/safebite/internal/testhelpers"
	"github.com/safebite/safebite/internal/types"
	"gorm.io/gorm"
)

func seedAlerts(t *testing.T, db *gorm.DB) {
	t.Helper()
	svc := service.NewAlertService(db)
	ctx := context.Background()

	alerts := []models.RecallAlert{
		{
			ID:                "oat-milk",
			Type:              "Recall",
			Title:             "Recall: Brand X Oat Milk",
			Description:       "Undeclared almond allergen found.",
			RelevantAllergens: models.JSONBStringArray{"tree_nut"},
		},
		{
			ID:                "sesame-warning",
			Type:              "Contamination",
			Title:             "Warning: Restaurant Y Update",
			Description:       "Reported cross-contamination risk for sesame.",
			RelevantAllergens: models.JSONBStringArray{"sesame"},
		},
	}
	for i := range alerts {
		require.NoError(t, svc.UpsertAlert(ctx, &alerts[i]))
	}
}

func TestAlertsFilteredByProfileAllergens(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seedAlerts(t, db)
	userID := uuid.New()
	ctx := context.Background()

	allergens := []string{"sesame"}
	_, err := service.NewProfileService(db, service.NopPublisher{}).
		Merge(ctx, userID, &types.ProfilePatch{Allergens: &allergens})
	require.NoError(t, err)

	alerts, err := service.NewAlertService(db).ListForUser(ctx, userID)
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "sesame-warning", alerts[0].ID)
}

func TestAlertsUnfilteredWithoutProfile(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seedAlerts(t, db)

	alerts, err := service.NewAlertService(db).ListForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestAlertsUnfilteredWithEmptyAllergenList(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	seedAlerts(t, db)
	userID := uuid.New()
	ctx := context.Background()

	empty := []string{}
	_, err := service.NewProfileService(db, service.NopPublisher{}).
		Merge(ctx, userID, &types.ProfilePatch{Allergens: &empty})
	require.NoError(t, err)

	alerts, err := service.NewAlertService(db).ListForUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestUpsertAlertValidatesType(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAlertService(db)

	err := svc.UpsertAlert(context.Background(), &models.RecallAlert{
		ID:    "bad",
		Type:  "Rumor",
		Title: "Not a real alert type",
	})
	assert.Error(t, err)
}
