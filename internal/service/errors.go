package service

import "errors"

var (
	// ErrInvalidCredentials is returned by login for an unknown email and for
	// a wrong password alike.
	ErrInvalidCredentials = errors.New("credentials do not match")

	// ErrUnauthenticated is returned by the authentication gate for a
	// missing, malformed, expired or revoked token.
	ErrUnauthenticated = errors.New("unauthenticated")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
