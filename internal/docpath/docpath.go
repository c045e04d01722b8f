// Package docpath defines the logical document paths shared by the server,
// the realtime feed, and the client. Paths follow the backend layout:
//
//	users/{userId}/profiles/user_profile
//	users/{userId}/logs
//	allergens
//	educational_resources
package docpath

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies what a path points at.
type Kind int

const (
	KindInvalid Kind = iota
	KindProfile
	KindLogs
	KindAllergens
	KindResources
)

const (
	// Allergens is the global read-only allergen catalog collection.
	Allergens = "allergens"
	// EducationalResources is the global read-only resource collection.
	EducationalResources = "educational_resources"
)

var ErrInvalidPath = errors.New("invalid document path")

// UserProfile returns the profile document path for a user.
func UserProfile(userID string) string {
	return fmt.Sprintf("users/%s/profiles/user_profile", userID)
}

// UserLogs returns the log collection path for a user.
func UserLogs(userID string) string {
	return fmt.Sprintf("users/%s/logs", userID)
}

// Ref is a parsed path. UserID is empty for global collections.
type Ref struct {
	Kind   Kind
	UserID string
	Path   string
}

// Parse validates a path string and resolves it to a Ref.
func Parse(path string) (Ref, error) {
	switch path {
	case Allergens:
		return Ref{Kind: KindAllergens, Path: path}, nil
	case EducationalResources:
		return Ref{Kind: KindResources, Path: path}, nil
	}

	parts := strings.Split(path, "/")
	if len(parts) < 3 || parts[0] != "users" || parts[1] == "" {
		return Ref{}, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	switch {
	case len(parts) == 4 && parts[2] == "profiles" && parts[3] == "user_profile":
		return Ref{Kind: KindProfile, UserID: parts[1], Path: path}, nil
	case len(parts) == 3 && parts[2] == "logs":
		return Ref{Kind: KindLogs, UserID: parts[1], Path: path}, nil
	}

	return Ref{}, fmt.Errorf("%w: %q", ErrInvalidPath, path)
}
