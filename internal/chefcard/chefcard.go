// Package chefcard renders the plain-text allergy disclosure card shown to
// restaurant staff. Generation is a pure function of the profile and the
// allergen catalog: identical inputs always yield byte-identical output.
package chefcard

import (
	"strings"

	"github.com/safebite/safebite/internal/models"
)

// SetupPrompt is returned instead of a card when the profile has no
// allergens selected.
const SetupPrompt = "Please set up your allergy profile first to generate a chef card."

const (
	greeting = "Dear Chef/Restaurant Staff,\n\n" +
		"I have severe food allergies. Please ensure that my meal is prepared without any cross-contamination with the following ingredients:\n\n"
	closing = "\nMy reaction to these allergens can be severe. Your careful attention to this is greatly appreciated.\n\nThank you!"
)

// Generate renders the card for the given profile against the catalog.
// Allergen ids not present in the catalog are skipped. A nil profile or an
// empty allergen list yields SetupPrompt.
func Generate(profile *models.UserProfile, catalog []models.Allergen) string {
	if profile == nil || len(profile.Allergens) == 0 {
		return SetupPrompt
	}

	byID := make(map[string]models.Allergen, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	var card strings.Builder
	card.WriteString(greeting)

	for _, id := range profile.Allergens {
		allergen, ok := byID[id]
		if !ok {
			continue
		}
		card.WriteString("- ")
		card.WriteString(allergen.Name)
		if len(allergen.CommonNames) > 0 {
			card.WriteString(" (")
			card.WriteString(strings.Join(allergen.CommonNames, ", "))
			card.WriteString(")")
		}
		card.WriteString("\n")
		if len(allergen.HiddenSources) > 0 {
			card.WriteString("  (Also known as: ")
			card.WriteString(strings.Join(allergen.HiddenSources, ", "))
			card.WriteString(")\n")
		}
	}

	if profile.SecondaryRestrictions != "" {
		card.WriteString("\nAdditionally, I follow a ")
		card.WriteString(profile.SecondaryRestrictions)
		card.WriteString(" diet.\n")
	}

	card.WriteString(closing)
	return card.String()
}
