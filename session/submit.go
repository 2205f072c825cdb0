package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// DefaultAttempts is how many times a mutating request is tried before giving up.
const DefaultAttempts = 3

var (
	// ErrSubmissionFailed is matched by SubmissionFailedError.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrMalformedForm is returned before any request is made.
	ErrMalformedForm = errors.New("malformed form")
)

// SubmissionFailedError reports a mutating request that kept failing
// transiently until the attempts ran out. Nothing is assumed committed.
type SubmissionFailedError struct {
	Address  string
	Attempts int
	LastErr  error
}

func (e *SubmissionFailedError) Error() string {
	return fmt.Sprintf("submission to %s failed after %d attempts: %v", e.Address, e.Attempts, e.LastErr)
}

func (e *SubmissionFailedError) Unwrap() error { return e.LastErr }

func (e *SubmissionFailedError) Is(target error) bool {
	return target == ErrSubmissionFailed
}

// Form is the context of one mutating page submission.
type Form struct {
	Address string
	Fields  url.Values
}

func (f Form) validate() error {
	if f.Address == "" {
		return fmt.Errorf("%w: empty address", ErrMalformedForm)
	}
	if len(f.Fields) == 0 {
		return fmt.Errorf("%w: no fields for %s", ErrMalformedForm, f.Address)
	}
	return nil
}

// Submitter posts forms through a Session and retries transient failures a
// fixed number of times with no delay between attempts.
type Submitter struct {
	session  Session
	attempts int
	logger   *slog.Logger
}

// NewSubmitter wraps s. attempts <= 0 selects DefaultAttempts.
func NewSubmitter(s Session, attempts int, logger *slog.Logger) *Submitter {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{session: s, attempts: attempts, logger: logger}
}

// Submit performs the submission, once per attempt. Non-transient failures
// return immediately; exhausting the attempts returns a SubmissionFailedError.
func (s *Submitter) Submit(ctx context.Context, form Form) (Document, error) {
	if err := form.validate(); err != nil {
		return Document{}, err
	}

	attempts := 0
	doc, err := backoff.Retry(ctx, func() (Document, error) {
		attempts++
		doc, err := s.session.Submit(ctx, form.Address, form.Fields)
		if err == nil {
			return doc, nil
		}
		if !IsTransient(err) {
			return Document{}, backoff.Permanent(err)
		}
		return Document{}, err
	},
		backoff.WithBackOff(&backoff.ZeroBackOff{}),
		backoff.WithMaxTries(uint(s.attempts)),
		backoff.WithNotify(func(err error, _ time.Duration) {
			s.logger.Warn("submit failed, trying again", "url", form.Address, "attempt", attempts, "error", err)
		}),
	)
	if err == nil {
		return doc, nil
	}

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	if ctx.Err() != nil {
		return Document{}, fmt.Errorf("submit %s: %w", form.Address, err)
	}
	if IsTransient(err) {
		s.logger.Error("giving up on submission", "url", form.Address, "attempts", attempts, "error", err)
		return Document{}, &SubmissionFailedError{Address: form.Address, Attempts: attempts, LastErr: err}
	}
	return Document{}, fmt.Errorf("submit %s: %w", form.Address, err)
}
