package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a required input field
	// (name, email, password, note title, ...) is missing or empty.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the uniform login failure: it covers both an
	// unknown email and a wrong password so that callers cannot tell which
	// of the two was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTokenIsExpiredOrInvalid is the single outcome for every token
	// verification failure. Bad signature, wrong issuer, and expiry are
	// deliberately not distinguished; all of them funnel the caller back to
	// re-authentication.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is returned when signing a new session token
	// fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrEmptySearchQuery is the "no query entered" sentinel: the search
	// input was empty or all whitespace. It is distinct from a valid query
	// with zero matches, which yields an empty result and a nil error.
	ErrEmptySearchQuery = errors.New("no search query entered")

	// ErrNoUpdateRequested is returned when a note update request carries
	// neither a done flag nor a delete request.
	ErrNoUpdateRequested = errors.New("no update requested")
)
