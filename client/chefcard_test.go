package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safebite/safebite/internal/models"
)

func TestGenerateChefCardEmptyProfile(t *testing.T) {
	assert.Equal(t, ChefCardSetupPrompt, GenerateChefCard(nil, nil))
	assert.Equal(t, ChefCardSetupPrompt, GenerateChefCard(&models.UserProfile{}, nil))
}

func TestCopyChefCardReportsClipboardFailure(t *testing.T) {
	profile := &models.UserProfile{Allergens: models.JSONBStringArray{"peanut"}}
	catalog := []models.Allergen{{ID: "peanut", Name: "Peanut"}}

	clipErr := errors.New("clipboard unavailable")
	card, err := CopyChefCard(profile, catalog, func(string) error { return clipErr })

	require.ErrorIs(t, err, clipErr)
	// The card text is still usable even when the export side effect fails.
	assert.Contains(t, card, "- Peanut")
}

func TestCopyChefCardDeliversText(t *testing.T) {
	profile := &models.UserProfile{Allergens: models.JSONBStringArray{"peanut"}}
	catalog := []models.Allergen{{ID: "peanut", Name: "Peanut"}}

	var copied string
	card, err := CopyChefCard(profile, catalog, func(text string) error {
		copied = text
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, card, copied)
}
