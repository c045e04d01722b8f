package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/models"
	"github.com/safebite/safebite/internal/types"
)

// LogEntryInput is the payload for appending a log entry. Timestamps are
// always assigned by the server.
type LogEntryInput = types.AppendLogRequest

var (
	ErrFoodIntakeRequired = errors.New("food intake is required")
	ErrSymptomsRequired   = errors.New("at least one symptom is required")
)

// ParseSymptoms splits comma-separated symptom input, trims each entry,
// and drops empties. "Hives, , stomach ache" becomes two symptoms.
func ParseSymptoms(input string) []string {
	parts := strings.Split(input, ",")
	symptoms := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			symptoms = append(symptoms, trimmed)
		}
	}
	return symptoms
}

// LogStore mirrors the user's symptom log. The wire promises no ordering,
// so the mirror is re-sorted newest-first on every delivery.
type LogStore struct {
	api        *api
	session    *SessionManager
	subscriber Subscriber

	mu      sync.Mutex
	entries []models.LogEntry
	loaded  bool
	lastErr error
	cancel  CancelFunc
}

// NewLogStore wires the store to the session and the live feed. It
// registers itself to clear on sign-out.
func NewLogStore(baseURL string, httpClient *http.Client, session *SessionManager, subscriber Subscriber) *LogStore {
	s := &LogStore{
		api:        newAPI(baseURL, httpClient),
		session:    session,
		subscriber: subscriber,
	}
	session.OnSignOut(s.reset)
	return s
}

// Append validates and submits a new entry. Validation failures never
// reach the wire.
func (s *LogStore) Append(ctx context.Context, entry *LogEntryInput) error {
	if strings.TrimSpace(entry.FoodIntake) == "" {
		return ErrFoodIntakeRequired
	}
	if len(ParseSymptoms(strings.Join(entry.SymptomsExperienced, ","))) == 0 {
		return ErrSymptomsRequired
	}

	token, ok := s.session.Token()
	if !ok {
		return ErrUnauthenticated
	}

	return s.api.do(ctx, http.MethodPost, "/logs", token, entry, nil)
}

// SubscribeAll starts the live mirror of the full log history.
func (s *LogStore) SubscribeAll() error {
	userID, ok := s.session.UserID()
	if !ok {
		return ErrUnauthenticated
	}

	cancel, err := s.subscriber.Subscribe(
		docpath.UserLogs(userID),
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

func (s *LogStore) apply(data json.RawMessage) {
	var entries []models.LogEntry
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &entries); err != nil {
			s.mu.Lock()
			s.lastErr = err
			s.mu.Unlock()
			return
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	s.mu.Lock()
	s.entries = entries
	s.loaded = true
	s.lastErr = nil
	s.mu.Unlock()
}

// Entries returns the mirrored log, newest first. The second return is
// false until the first delivery arrives.
func (s *LogStore) Entries() ([]models.LogEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.LogEntry(nil), s.entries...), s.loaded
}

// Err returns the last subscription or decode error, if any.
func (s *LogStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close cancels the live subscription. Safe to call repeatedly.
func (s *LogStore) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *LogStore) reset() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.entries = nil
	s.loaded = false
	s.lastErr = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
