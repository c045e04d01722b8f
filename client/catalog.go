package client

import (
	"encoding/json"
	"sync"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
)

// RawHTML marks content that is trusted rich text from the curated
// resource channel. Renderers must opt in to treating it as markup; the
// distinct type keeps it from being dropped into a template by accident.
type RawHTML string

// Resource is an educational resource as presented to the host
// application, with its content typed as raw HTML.
type Resource struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Source           string   `json:"source"`
	Content          RawHTML  `json:"content"`
	AllergensCovered []string `json:"allergensCovered"`
}

// CatalogStore mirrors the two global read-only collections: the allergen
// catalog and the educational resources.
type CatalogStore struct {
	subscriber Subscriber

	mu        sync.Mutex
	allergens []models.Allergen
	byID      map[string]models.Allergen
	resources []Resource
	lastErr   error
	cancels   []CancelFunc
}

func NewCatalogStore(subscriber Subscriber) *CatalogStore {
	return &CatalogStore{subscriber: subscriber}
}

// Start begins mirroring both collections.
func (s *CatalogStore) Start() error {
	onError := func(err error) {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}

	cancelAllergens, err := s.subscriber.Subscribe(docpath.Allergens, s.applyAllergens, onError)
	if err != nil {
		return err
	}

	cancelResources, err := s.subscriber.Subscribe(docpath.EducationalResources, s.applyResources, onError)
	if err != nil {
		cancelAllergens()
		return err
	}

	s.mu.Lock()
	s.cancels = append(s.cancels, cancelAllergens, cancelResources)
	s.mu.Unlock()
	return nil
}

func (s *CatalogStore) applyAllergens(data json.RawMessage) {
	var allergens []models.Allergen
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &allergens); err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			return
		}
	}

	byID := make(map[string]models.Allergen, len(allergens))
	for _, a := range allergens {
		byID[a.ID] = a
	}

	s.mu.Lock()
	s.allergens = allergens
	s.byID = byID
	s.mu.Unlock()
}

func (s *CatalogStore) applyResources(data json.RawMessage) {
	var raw []models.EducationalResource
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &raw); err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			return
		}
	}

	resources := make([]Resource, 0, len(raw))
	for _, r := range raw {
		resources = append(resources, Resource{
			ID:               r.ID,
			Title:            r.Title,
			Source:           r.Source,
			Content:          RawHTML(r.Content),
			AllergensCovered: append([]string(nil), r.AllergensCovered...),
		})
	}

	s.mu.Lock()
	s.resources = resources
	s.mu.Unlock()
}

// Allergens returns the mirrored catalog.
func (s *CatalogStore) Allergens() []models.Allergen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Allergen(nil), s.allergens...)
}

// Lookup resolves a catalog id to its entry.
func (s *CatalogStore) Lookup(id string) (models.Allergen, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	return a, ok
}

// Resources returns the mirrored educational resources.
func (s *CatalogStore) Resources() []Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Resource(nil), s.resources...)
}

// Err returns the last subscription or decode error, if any.
func (s *CatalogStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close cancels both mirrors. Safe to call repeatedly.
func (s *CatalogStore) Close() {
	s.mu.Lock()
	cancels := s.cancels
	s.cancels = nil
	s.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}
