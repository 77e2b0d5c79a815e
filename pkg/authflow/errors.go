package authflow

import "errors"

var (
	// ErrBadSecret is returned when the state signing secret is shorter than 32 bytes.
	ErrBadSecret = errors.New("authflow: secret must be 32+ bytes")

	// ErrInvalidState is returned when the callback state is missing, forged or expired.
	ErrInvalidState = errors.New("authflow: invalid state")

	// ErrMissingCode is returned when the callback carries no authorization code.
	ErrMissingCode = errors.New("authflow: missing authorization code")

	// ErrAccessDenied is returned when the provider redirects back with an error.
	ErrAccessDenied = errors.New("authflow: access denied by provider")

	// ErrMissingStateStore is returned when a handler is built without a StateStore.
	ErrMissingStateStore = errors.New("authflow: missing state store")

	// ErrMissingSuccessHandler is returned when a handler is built without a success callback.
	ErrMissingSuccessHandler = errors.New("authflow: missing success handler")
)
