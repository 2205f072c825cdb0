// Package session is the authenticated transport to the game server: page
// reads, form submissions and cookie continuity across runs.
package session

import (
	"context"
	"errors"
	"net"
	"net/url"
)

//go:generate go tool mockgen -destination=./mocks/session_mock.go -package=mocks . Session

// Document is a fetched or submitted page. Body holds the raw markup.
type Document struct {
	Address string
	Status  int
	Body    []byte
}

// Session is one authenticated identity with one cookie jar. It is not safe
// for concurrent use; the bot drives it from a single goroutine.
type Session interface {
	// Fetch reads a page.
	Fetch(ctx context.Context, address string) (Document, error)
	// Submit posts form fields to address. It mutates game state.
	Submit(ctx context.Context, address string, fields url.Values) (Document, error)
	// PersistCredentials writes the cookie jar to its file.
	PersistCredentials() error
	// RestoreCredentials loads the cookie jar file. It reports false when
	// there was nothing to restore.
	RestoreCredentials() (bool, error)
}

// TransientError marks a failure worth retrying (transport hiccup, 5xx).
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is classified as a transient transport
// failure: an explicit TransientError or a network timeout.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
