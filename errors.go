package userstore

import (
	"errors"
	"fmt"
)

var ErrInvalidRole = errors.New("userstore: invalid role")

var ErrUnknownUser = errors.New("userstore: unknown user")

var ErrSourceRequired = errors.New("userstore: source is required")

var ErrNoMatcher = errors.New("userstore: matcher not configured")

// ErrDuplicateEmail is the sentinel behind DuplicateEmailError; use
// errors.Is to classify rejected create/update calls.
var ErrDuplicateEmail = errors.New("userstore: duplicate email")

// DuplicateEmailError captures which operation was rejected and the
// conflicting email.
type DuplicateEmailError struct {
	Op    string
	Email string
}

func (e *DuplicateEmailError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("userstore: %s rejected: user with email %q already exists", e.Op, e.Email)
}

func (e *DuplicateEmailError) Unwrap() error {
	return ErrDuplicateEmail
}
