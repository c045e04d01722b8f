package service_test

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
)

func TestProfileGetNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewProfileService(db, service.NopPublisher{})

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrProfileNotFound)
}

func TestProfileMergeCreatesOnFirstSave(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	pub := &testhelpers.RecordingPublisher{}
	svc := service.NewProfileService(db, pub)
	userID := uuid.New()

	allergens := []string{"peanut", "milk"}
	profile, err := svc.Merge(context.Background(), userID, &types.ProfilePatch{
		Allergens: &allergens,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, models.JSONBStringArray{"peanut", "milk"}, profile.Allergens)

	stored, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, stored.ID)

	assert.Equal(t, []string{docpath.UserProfile(userID.String())}, pub.Published())
}

func TestProfileMergePreservesUnspecifiedFields(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewProfileService(db, service.NopPublisher{})
	userID := uuid.New()
	ctx := context.Background()

	allergens := []string{"peanut"}
	contacts := []models.EmergencyContact{{Name: "Jamie", Phone: "555-0100"}}
	restrictions := "vegan"
	plan := models.EmergencyPlan{Medication: "Epinephrine", Dosage: "0.3mg", Instructions: "Inject and call 911"}

	_, err := svc.Merge(ctx, userID, &types.ProfilePatch{
		Allergens:             &allergens,
		EmergencyContacts:     &contacts,
		SecondaryRestrictions: &restrictions,
		EmergencyPlan:         &plan,
	})
	require.NoError(t, err)

	// Second save touches only the allergen list.
	updated := []string{"peanut", "shellfish"}
	profile, err := svc.Merge(ctx, userID, &types.ProfilePatch{Allergens: &updated})
	require.NoError(t, err)

	assert.Equal(t, models.JSONBStringArray{"peanut", "shellfish"}, profile.Allergens)
	assert.Equal(t, models.EmergencyContacts(contacts), profile.EmergencyContacts)
	assert.Equal(t, "vegan", profile.SecondaryRestrictions)
	assert.Equal(t, plan, profile.EmergencyPlan)
}

func TestProfileMergeEmptyPatchKeepsEverything(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewProfileService(db, service.NopPublisher{})
	userID := uuid.New()
	ctx := context.Background()

	allergens := []string{"milk"}
	_, err := svc.Merge(ctx, userID, &types.ProfilePatch{Allergens: &allergens})
	require.NoError(t, err)

	profile, err := svc.Merge(ctx, userID, &types.ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, models.JSONBStringArray{"milk"}, profile.Allergens)
}

func TestProfileMergeClearsWithExplicitEmpty(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewProfileService(db, service.NopPublisher{})
	userID := uuid.New()
	ctx := context.Background()

	allergens := []string{"peanut"}
	_, err := svc.Merge(ctx, userID, &types.ProfilePatch{Allergens: &allergens})
	require.NoError(t, err)

	empty := []string{}
	profile, err := svc.Merge(ctx, userID, &types.ProfilePatch{Allergens: &empty})
	require.NoError(t, err)
	assert.Empty(t, profile.Allergens)
}

func TestProfilesAreIsolatedPerUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewProfileService(db, service.NopPublisher{})
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	aliceAllergens := []string{"peanut"}
	bobAllergens := []string{"milk"}

	_, err := svc.Merge(ctx, alice, &types.ProfilePatch{Allergens: &aliceAllergens})
	require.NoError(t, err)
	_, err = svc.Merge(ctx, bob, &types.ProfilePatch{Allergens: &bobAllergens})
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, models.JSONBStringArray{"peanut"}, got.Allergens)
}
