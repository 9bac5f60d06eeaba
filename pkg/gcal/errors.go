package gcal

import (
	"errors"
	"fmt"
)

// AuthError means no usable credentials exist (token missing, denied, or
// expired beyond recovery). Callers surface it as a sign-in prompt and never
// retry it automatically.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "gcal: sign-in required"
	}
	return fmt.Sprintf("gcal: sign-in required: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// HTTPError is any non-2xx provider response other than the recoverable 401.
// It is surfaced as a generic failure and not retried.
type HTTPError struct {
	Status int
	Err    error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gcal: provider returned status %d: %v", e.Status, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// IsAuth reports whether err asks for a sign-in.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
