package auth

import "errors"

var (
	// ErrMissingToken indicates a request carried no bearer token.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidToken indicates a malformed token or a bad signature.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the access token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrRefreshExpired indicates the token is too old to be refreshed.
	ErrRefreshExpired = errors.New("authentication token can no longer be refreshed")

	// ErrRevokedToken indicates the token was already exchanged by a refresh.
	ErrRevokedToken = errors.New("authentication token has been revoked")

	// ErrInvalidCredentials is returned when e-mail and password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooLong is returned when a password exceeds the 72 bytes
	// bcrypt can hash.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)
