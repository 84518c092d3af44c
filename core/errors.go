package core

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the command-handling taxonomy. Handlers and services
// wrap these with fmt.Errorf("...: %w", err) so callers can classify with
// errors.Is.
var (
	// ErrNoMatch means a lookup returned nothing usable for the query.
	ErrNoMatch = errors.New("no match found")
	// ErrPermissionDenied is a delivery-side, platform-level rejection.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrTransport covers network and API failures, including timeouts.
	ErrTransport = errors.New("transport error")
)

// OnCooldownError rejects an invocation whose scope-key has exhausted its
// cooldown window.
type OnCooldownError struct {
	RetryAfter time.Duration
}

func (e *OnCooldownError) Error() string {
	return fmt.Sprintf("on cooldown, retry after %.2fs", e.RetryAfter.Seconds())
}

// BadArgumentError rejects an invocation whose positional tokens could not
// be coerced to the command's parameter kinds.
type BadArgumentError struct {
	Param  string
	Value  string
	Reason string
}

func (e *BadArgumentError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("bad argument %s=%q: %s", e.Param, e.Value, e.Reason)
	}
	return fmt.Sprintf("bad argument %s: %s", e.Param, e.Reason)
}

// IsNoMatchError checks if an error is a "no match" lookup outcome
func IsNoMatchError(err error) bool {
	return errors.Is(err, ErrNoMatch)
}

// IsPermissionDeniedError checks if an error is a platform permission rejection
func IsPermissionDeniedError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsTransportError checks if an error is a network/API failure
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}
