package entities

import (
	"fmt"
	"time"
)

// AuthenticationError is returned when the provider rejects the
// configured credentials. It aborts the run.
type AuthenticationError struct {
	Provider   string
	StatusCode int
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf(
		"%s authentication failed (HTTP %d): check your token",
		e.Provider, e.StatusCode,
	)
}

// RateLimitError is returned when the provider throttles the client.
// It aborts the run; RetryAfter carries the server-suggested wait when
// the response included one.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf(
			"%s rate limit exceeded, retry after %d seconds",
			e.Provider, int(e.RetryAfter.Seconds()),
		)
	}
	return fmt.Sprintf("%s rate limit exceeded", e.Provider)
}

// NotFoundError is returned when the requested owner or repository
// does not exist (or the token cannot see it). It aborts the run.
type NotFoundError struct {
	Owner string
	Repo  string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Repo != "" {
		return fmt.Sprintf("repository %s/%s not found", e.Owner, e.Repo)
	}
	return fmt.Sprintf("owner %q not found", e.Owner)
}

// CloneError is returned when cloning or measuring a single repository
// fails. It is recoverable: the run marks the row unavailable and
// moves on.
type CloneError struct {
	Repo   string
	Output string // trailing git output, for the debug log
	Err    error
}

// Error implements the error interface.
func (e *CloneError) Error() string {
	return fmt.Sprintf("failed to clone %s: %v", e.Repo, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *CloneError) Unwrap() error {
	return e.Err
}

// OutputError is returned when the rendered report cannot be written
// to the requested destination.
type OutputError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to write report to %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *OutputError) Unwrap() error {
	return e.Err
}
