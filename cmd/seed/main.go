package main

import (
	"context"
	"log"

	"github.com/safebite/safebite/config"
	"github.com/safebite/safebite/internal/database"
	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/service"
)

// Seeds the allergen catalog, starter educational resources, and example
// recall alerts. Safe to run repeatedly; entries are upserted by id.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	ctx := context.Background()
	catalog := service.NewCatalogService(db, service.NopPublisher{})
	alerts := service.NewAlertService(db)

	for i := range seedAllergens {
		if err := catalog.UpsertAllergen(ctx, &seedAllergens[i]); err != nil {
			log.Fatalf("Failed to seed allergen %s: %v", seedAllergens[i].ID, err)
		}
	}
	log.Printf("Seeded %d allergens", len(seedAllergens))

	for i := range seedResources {
		if err := catalog.UpsertResource(ctx, &seedResources[i]); err != nil {
			log.Fatalf("Failed to seed resource %s: %v", seedResources[i].ID, err)
		}
	}
	log.Printf("Seeded %d educational resources", len(seedResources))

	for i := range seedAlerts {
		if err := alerts.UpsertAlert(ctx, &seedAlerts[i]); err != nil {
			log.Fatalf("Failed to seed alert %s: %v", seedAlerts[i].ID, err)
		}
	}
	log.Printf("Seeded %d alerts", len(seedAlerts))
}

var seedAllergens = []models.Allergen{
	{
		ID:                 "peanut",
		Name:               "Peanut",
		CommonNames:        models.JSONBStringArray{"peanuts", "groundnut", "goober"},
		HiddenSources:      models.JSONBStringArray{"arachis oil", "satay sauce", "mixed nuts"},
		CrossReactiveFoods: models.JSONBStringArray{"lupin", "tree nuts"},
	},
	{
		ID:                 "tree_nut",
		Name:               "Tree Nut",
		CommonNames:        models.JSONBStringArray{"almond", "cashew", "walnut", "pecan", "pistachio", "hazelnut"},
		HiddenSources:      models.JSONBStringArray{"marzipan", "praline", "nougat", "gianduja"},
		CrossReactiveFoods: models.JSONBStringArray{"peanut"},
	},
	{
		ID:                 "milk",
		Name:               "Milk",
		CommonNames:        models.JSONBStringArray{"dairy", "lactose", "cream", "butter"},
		HiddenSources:      models.JSONBStringArray{"casein", "whey", "ghee", "lactalbumin"},
		CrossReactiveFoods: models.JSONBStringArray{"goat milk", "sheep milk"},
	},
	{
		ID:            "egg",
		Name:          "Egg",
		CommonNames:   models.JSONBStringArray{"eggs", "egg white", "egg yolk"},
		HiddenSources: models.JSONBStringArray{"albumin", "ovalbumin", "lysozyme", "meringue", "mayonnaise"},
	},
	{
		ID:                 "wheat",
		Name:               "Wheat",
		CommonNames:        models.JSONBStringArray{"flour", "gluten"},
		HiddenSources:      models.JSONBStringArray{"semolina", "spelt", "durum", "seitan", "couscous"},
		CrossReactiveFoods: models.JSONBStringArray{"barley", "rye"},
	},
	{
		ID:            "soy",
		Name:          "Soy",
		CommonNames:   models.JSONBStringArray{"soya", "soybean", "edamame"},
		HiddenSources: models.JSONBStringArray{"tofu", "tempeh", "miso", "textured vegetable protein", "lecithin"},
	},
	{
		ID:                 "fish",
		Name:               "Fish",
		CommonNames:        models.JSONBStringArray{"cod", "salmon", "tuna", "anchovy"},
		HiddenSources:      models.JSONBStringArray{"worcestershire sauce", "caesar dressing", "fish sauce", "surimi"},
		CrossReactiveFoods: models.JSONBStringArray{"shellfish"},
	},
	{
		ID:                 "shellfish",
		Name:               "Shellfish",
		CommonNames:        models.JSONBStringArray{"shrimp", "prawn", "crab", "lobster"},
		HiddenSources:      models.JSONBStringArray{"bouillabaisse", "fish stock", "glucosamine"},
		CrossReactiveFoods: models.JSONBStringArray{"mollusks", "fish"},
	},
	{
		ID:            "sesame",
		Name:          "Sesame",
		CommonNames:   models.JSONBStringArray{"sesame seeds", "tahini"},
		HiddenSources: models.JSONBStringArray{"hummus", "halvah", "za'atar", "gomashio"},
	},
}

var seedResources = []models.EducationalResource{
	{
		ID:               "reading-labels",
		Title:            "How to Read Food Labels for Allergens",
		Source:           "SafeBite Editorial",
		Content:          "<p>Allergen labeling laws require the nine major allergens to be declared, but <strong>hidden sources</strong> and advisory statements still catch people out. Always read the full ingredient list, not just the contains statement.</p>",
		AllergensCovered: models.TolerantStringArray{"peanut", "tree_nut", "milk", "egg", "wheat", "soy", "fish", "shellfish", "sesame"},
	},
	{
		ID:               "cross-contamination",
		Title:            "Preventing Cross-Contamination at Home",
		Source:           "SafeBite Editorial",
		Content:          "<p>Use separate cutting boards and utensils for allergen-free cooking. A shared fryer or grill can transfer enough protein to trigger a reaction even when the dish itself is allergen-free.</p>",
		AllergensCovered: models.TolerantStringArray{},
	},
	{
		ID:               "epinephrine-basics",
		Title:            "Epinephrine Auto-Injector Basics",
		Source:           "Allergy & Anaphylaxis Network",
		Content:          "<p>Epinephrine is the first-line treatment for anaphylaxis. Carry two auto-injectors, check expiry dates monthly, and practice with a trainer device so the real thing is familiar.</p>",
	},
}

var seedAlerts = []models.RecallAlert{
	{
		ID:                "alert-oat-milk-almond",
		Type:              "Recall",
		Title:             "Recall: Brand X Oat Milk",
		Description:       "Undeclared almond allergen found.",
		RelevantAllergens: models.JSONBStringArray{"tree_nut"},
	},
	{
		ID:                "alert-sesame-contamination",
		Type:              "Contamination",
		Title:             "Warning: Restaurant Y Update",
		Description:       "Reported cross-contamination risk for sesame.",
		RelevantAllergens: models.JSONBStringArray{"sesame"},
	},
}
