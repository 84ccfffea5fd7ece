package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated means the bearer credential is missing, malformed or expired.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller's role is not allowed for the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstreamUnavailable wraps credential store failures.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedRequest means required request fields are missing.
	ErrMalformedRequest = errors.New("malformed request")
	// ErrUserNotFound is returned by UserStore lookups for an unknown username.
	// Authenticators fold it into ErrInvalidCredentials before it reaches a client.
	ErrUserNotFound = errors.New("user not found")
)
