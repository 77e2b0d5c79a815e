package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrMissingProvider is returned when a strategy is built without a provider.
	ErrMissingProvider = errors.New("oauth: missing provider")

	// ErrMissingVerify is returned when a strategy is built without a verify callback.
	ErrMissingVerify = errors.New("oauth: missing verify callback")

	// ErrInvalidCredentials is returned when the verify callback rejects the user.
	ErrInvalidCredentials = errors.New("oauth: invalid credentials")

	// ErrNilResponse is returned when the OAuth provider returns a nil response.
	ErrNilResponse = errors.New("oauth: nil response from provider")

	// ErrFetchFailed is returned when fetching data from the OAuth provider fails.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the OAuth provider returns a non-OK status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrDecodeFailed is returned when decoding the OAuth provider response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")

	// ErrExchangeFailed is returned when the authorization code cannot be traded for a token.
	ErrExchangeFailed = errors.New("oauth: code exchange failed")
)

// StatusError carries the status and body of a non-2xx provider response.
type StatusError struct {
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status=%d body=%s", e.StatusCode, e.Body)
}
