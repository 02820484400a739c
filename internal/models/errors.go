package models

import (
	"errors"
	"fmt"
)

// Sentinel domain errors. Repositories and services return these (or
// errors wrapping them); the HTTP layer translates them to status codes
// in one place.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password
	// at login, so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken means the bearer credential is missing, malformed,
	// expired, or signed with the wrong key.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUnknownUser means a well-formed token references a user that no
	// longer exists.
	ErrUnknownUser = errors.New("token references unknown user")

	// ErrEmailTaken means the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound means the referenced user id does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound means the referenced task id does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAccessDenied is the target for errors.Is on *AccessError.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidEnum is the target for errors.Is on *InvalidEnumError.
	ErrInvalidEnum = errors.New("invalid enum value")

	// ErrMissingFilter means a filtered listing was requested without an
	// author or executor id.
	ErrMissingFilter = errors.New("either authorId or executorId must be provided")

	// ErrInvalidPage means pagination parameters are out of range
	// (page < 0 or size < 1).
	ErrInvalidPage = errors.New("page must be >= 0 and size >= 1")

	// ErrEmptyComment means a comment with no content was submitted.
	ErrEmptyComment = errors.New("comment content must not be empty")
)

// Denial reason codes carried by AccessError.
const (
	DenyNotAdmin    = "caller is not an admin"
	DenyNotExecutor = "caller is not the task executor"
	DenyUnassigned  = "task has no executor"
)

// AccessError is a typed authorization denial: which operation was
// attempted and why it was refused.
type AccessError struct {
	// Op is the name of the refused operation.
	Op string
	// Reason is one of the Deny* reason codes.
	Reason string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Unwrap makes errors.Is(err, ErrAccessDenied) hold for every denial.
func (e *AccessError) Unwrap() error {
	return ErrAccessDenied
}

// InvalidEnumError reports a token that matched no member of a fixed
// enumeration. The original token is preserved for the error message.
type InvalidEnumError struct {
	// Kind names the enumeration: "role", "status" or "priority".
	Kind string
	// Token is the rejected input, as received.
	Token string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s value: %q", e.Kind, e.Token)
}

// Unwrap makes errors.Is(err, ErrInvalidEnum) hold for every enum failure.
func (e *InvalidEnumError) Unwrap() error {
	return ErrInvalidEnum
}
