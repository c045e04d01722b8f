package client

import (
	"fmt"

	"github.com/safebite/safebite/internal/chefcard"
	"github.com/safebite/safebite/internal/models"
)

// ChefCardSetupPrompt is shown instead of a card when the profile has no
// allergens selected.
const ChefCardSetupPrompt = chefcard.SetupPrompt

// GenerateChefCard renders the disclosure card locally from the mirrored
// profile and catalog. It is the same pure generator the server uses, so
// both paths produce identical text for identical inputs.
func GenerateChefCard(profile *models.UserProfile, catalog []models.Allergen) string {
	return chefcard.Generate(profile, catalog)
}

// Clipboard is a caller-supplied side effect for exporting card text.
type Clipboard func(text string) error

// CopyChefCard generates the card and hands it to the clipboard. A
// clipboard failure is reported alongside the text; the card itself is
// still returned so the host can fall back to showing it.
func CopyChefCard(profile *models.UserProfile, catalog []models.Allergen, clip Clipboard) (string, error) {
	card := GenerateChefCard(profile, catalog)
	if clip == nil {
		return card, nil
	}
	if err := clip(card); err != nil {
		return card, fmt.Errorf("copying chef card: %w", err)
	}
	return card, nil
}
