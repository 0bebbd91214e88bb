// Package common defines shared constants and sentinel errors used across
// t2-auth components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// hashing errors
	ErrorUnsupportedAlgo = errors.New("unsupported hash algorithm")

	// auth errors (invalid, expired or malformed token)
	ErrorInvalidToken = errors.New("invalid token")

	// inter-service coordination errors
	ErrorProfileCreation = errors.New("profile creation failed")
	ErrorUnavailable     = errors.New("upstream unavailable")
)
