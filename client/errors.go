package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned by any call that needs a session
	// before one has been established.
	ErrUnauthenticated = errors.New("no active session")

	// ErrNoProfile means the user has not saved a profile yet. A valid
	// state, not a transport failure.
	ErrNoProfile = errors.New("no profile saved yet")

	// ErrNotConnected is returned by Subscribe before Connect succeeds.
	ErrNotConnected = errors.New("feed not connected")
)

// HTTPError is a non-2xx response, carrying the body verbatim so callers
// can show the server's own message.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}
