package chefcard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safebite/safebite/internal/models"
)

var testCatalog = []models.Allergen{
	{
		ID:            "peanut",
		Name:          "Peanut",
		CommonNames:   models.JSONBStringArray{"peanuts", "groundnut"},
		HiddenSources: models.JSONBStringArray{"arachis oil", "satay sauce"},
	},
	{
		ID:   "sesame",
		Name: "Sesame",
	},
}

func TestGenerateEmptyProfile(t *testing.T) {
	assert.Equal(t, SetupPrompt, Generate(nil, testCatalog))
	assert.Equal(t, SetupPrompt, Generate(&models.UserProfile{}, testCatalog))
	assert.Equal(t, SetupPrompt, Generate(&models.UserProfile{Allergens: models.JSONBStringArray{}}, testCatalog))
}

func TestGenerateCard(t *testing.T) {
	profile := &models.UserProfile{
		Allergens:             models.JSONBStringArray{"peanut", "sesame"},
		SecondaryRestrictions: "vegan",
	}

	card := Generate(profile, testCatalog)

	assert.True(t, strings.HasPrefix(card, "Dear Chef/Restaurant Staff,"))
	assert.Contains(t, card, "- Peanut (peanuts, groundnut)\n")
	assert.Contains(t, card, "  (Also known as: arachis oil, satay sauce)\n")
	// No common names: no empty parentheses.
	assert.Contains(t, card, "- Sesame\n")
	assert.NotContains(t, card, "Sesame (")
	assert.Contains(t, card, "Additionally, I follow a vegan diet.\n")
	assert.True(t, strings.HasSuffix(card, "Thank you!"))
}

func TestGenerateSkipsUnknownAllergenIDs(t *testing.T) {
	profile := &models.UserProfile{
		Allergens: models.JSONBStringArray{"peanut", "not-in-catalog"},
	}

	card := Generate(profile, testCatalog)
	assert.Contains(t, card, "Peanut")
	assert.NotContains(t, card, "not-in-catalog")
}

func TestGenerateOmitsRestrictionSentenceWhenEmpty(t *testing.T) {
	profile := &models.UserProfile{Allergens: models.JSONBStringArray{"sesame"}}
	assert.NotContains(t, Generate(profile, testCatalog), "Additionally")
}

func TestGenerateIsDeterministic(t *testing.T) {
	profile := &models.UserProfile{
		Allergens:             models.JSONBStringArray{"peanut", "sesame"},
		SecondaryRestrictions: "kosher",
	}

	first := Generate(profile, testCatalog)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Generate(profile, testCatalog))
	}
}
