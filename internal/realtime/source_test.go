package realtime

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/service"
	"github.com/safebite/safebite/internal/testhelpers"
	"github.com/safebite/safebite/internal/types"
	"gorm.io/gorm"
)

func newSource(t *testing.T) (*ServiceSource, *gorm.DB) {
	db := testhelpers.SetupTestDB(t)
	profiles := service.NewProfileService(db, service.NopPublisher{})
	logs := service.NewLogService(db, service.NopPublisher{})
	catalog := service.NewCatalogService(db, service.NopPublisher{})
	return NewServiceSource(profiles, logs, catalog), db
}

func TestSnapshotMissingProfileIsNull(t *testing.T) {
	source, _ := newSource(t)

	ref, err := docpath.Parse(docpath.UserProfile(uuid.New().String()))
	require.NoError(t, err)

	data, err := source.Snapshot(context.Background(), ref)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSnapshotProfile(t *testing.T) {
	source, db := newSource(t)
	userID := uuid.New()
	ctx := context.Background()

	allergens := []string{"peanut"}
	_, err := service.NewProfileService(db, service.NopPublisher{}).
		Merge(ctx, userID, &types.ProfilePatch{Allergens: &allergens})
	require.NoError(t, err)

	ref, err := docpath.Parse(docpath.UserProfile(userID.String()))
	require.NoError(t, err)

	data, err := source.Snapshot(ctx, ref)
	require.NoError(t, err)

	profile, ok := data.(*models.UserProfile)
	require.True(t, ok)
	assert.Equal(t, models.JSONBStringArray{"peanut"}, profile.Allergens)
}

func TestSnapshotLogsAndGlobals(t *testing.T) {
	source, db := newSource(t)
	testhelpers.SeedAllergens(t, db)
	userID := uuid.New()
	ctx := context.Background()

	_, err := service.NewLogService(db, service.NopPublisher{}).Append(ctx, userID, &types.AppendLogRequest{
		FoodIntake:          "Toast",
		SymptomsExperienced: []string{"Itching"},
	})
	require.NoError(t, err)

	logsRef, err := docpath.Parse(docpath.UserLogs(userID.String()))
	require.NoError(t, err)
	data, err := source.Snapshot(ctx, logsRef)
	require.NoError(t, err)
	entries, ok := data.([]models.LogEntry)
	require.True(t, ok)
	assert.Len(t, entries, 1)

	allergensRef, err := docpath.Parse(docpath.Allergens)
	require.NoError(t, err)
	data, err = source.Snapshot(ctx, allergensRef)
	require.NoError(t, err)
	allergens, ok := data.([]models.Allergen)
	require.True(t, ok)
	assert.Len(t, allergens, 3)
}

func TestChannelNaming(t *testing.T) {
	assert.Equal(t, "safebite:doc:allergens", channelFor(docpath.Allergens))
	assert.Equal(t, "safebite:doc:users/u1/logs", channelFor("users/u1/logs"))
}
