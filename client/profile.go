package client

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/types"
)

// ProfilePatch is re-exported so hosts build merge requests without
// reaching into internal packages.
type ProfilePatch = types.ProfilePatch

// ProfileStore keeps a live mirror of the user's profile document. The
// mirror is replaced wholesale on every delivery; after a Save the local
// copy is set optimistically, but the subscription echo stays
// authoritative and overwrites it when it lands.
type ProfileStore struct {
	api        *api
	session    *SessionManager
	subscriber Subscriber

	mu      sync.Mutex
	profile *models.UserProfile
	loaded  bool
	lastErr error
	cancel  CancelFunc
}

// NewProfileStore wires the store to the session and the live feed. It
// registers itself to clear on sign-out.
func NewProfileStore(baseURL string, httpClient *http.Client, session *SessionManager, subscriber Subscriber) *ProfileStore {
	s := &ProfileStore{
		api:        newAPI(baseURL, httpClient),
		session:    session,
		subscriber: subscriber,
	}
	session.OnSignOut(s.reset)
	return s
}

// Load starts the live mirror for the signed-in user. Until the first
// delivery lands, Current reports not loaded.
func (s *ProfileStore) Load() error {
	userID, ok := s.session.UserID()
	if !ok {
		return ErrUnauthenticated
	}

	cancel, err := s.subscriber.Subscribe(
		docpath.UserProfile(userID),
		s.apply,
		func(err error) {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
		},
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()
	return nil
}

// apply replaces the mirror with a delivered value. A JSON null means the
// user has no profile document, which is a valid loaded state.
func (s *ProfileStore) apply(data json.RawMessage) {
	var profile *models.UserProfile
	if len(data) > 0 && string(data) != "null" {
		profile = &models.UserProfile{}
		if err := json.Unmarshal(data, profile); err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			return
		}
	}

	s.mu.Lock()
	s.profile = profile
	s.loaded = true
	s.lastErr = nil
	s.mu.Unlock()
}

// Current returns the mirrored profile. The second return is false until
// the first delivery arrives; a nil profile with true means the user has
// not saved one yet.
func (s *ProfileStore) Current() (*models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, s.loaded
}

// Err returns the last subscription or decode error, if any.
func (s *ProfileStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Save merge-writes the patch. Fields left nil are preserved server-side.
// Fails fast without a session. On success the patch is applied to the
// local mirror immediately rather than waiting for the echo.
func (s *ProfileStore) Save(ctx context.Context, patch *ProfilePatch) error {
	token, ok := s.session.Token()
	if !ok {
		return ErrUnauthenticated
	}

	var resp struct {
		Profile *models.UserProfile `json:"profile"`
	}
	if err := s.api.do(ctx, http.MethodPut, "/profile", token, patch, &resp); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if resp.Profile != nil {
		s.profile = resp.Profile
	} else {
		s.applyPatchLocked(patch)
	}
	s.loaded = true
	return nil
}

func (s *ProfileStore) applyPatchLocked(patch *ProfilePatch) {
	if s.profile == nil {
		s.profile = &models.UserProfile{}
	}
	if patch.Allergens != nil {
		s.profile.Allergens = models.JSONBStringArray(*patch.Allergens)
	}
	if patch.EmergencyContacts != nil {
		s.profile.EmergencyContacts = models.EmergencyContacts(*patch.EmergencyContacts)
	}
	if patch.SecondaryRestrictions != nil {
		s.profile.SecondaryRestrictions = *patch.SecondaryRestrictions
	}
	if patch.EmergencyPlan != nil {
		s.profile.EmergencyPlan = *patch.EmergencyPlan
	}
}

// Close cancels the live subscription. Safe to call repeatedly.
func (s *ProfileStore) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *ProfileStore) reset() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.profile = nil
	s.loaded = false
	s.lastErr = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
