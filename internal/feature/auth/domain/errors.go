// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
// Lower layers (password hasher, token codecs, repositories) return these values directly so that
// the HTTP boundary can map them with errors.Is.
var (
	// ErrInvalidArgument indicates a programmer error such as an empty required input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTokenExpired indicates that a signed token is past its expiry time.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid indicates a malformed token, a bad signature or an unexpected claim shape.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrInvalidCredentials indicates that the provided credentials are incorrect.
	// It is returned both for unknown emails and wrong passwords so that accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyRegistered indicates that a user with the given email already exists.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrDeliveryFailed indicates that the password reset email could not be sent.
	ErrDeliveryFailed = errors.New("failed to deliver email")

	// ErrWeakPassword indicates that a new password does not satisfy the password policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters long and include an uppercase letter, a number and a symbol")

	// ErrTooManyRequests indicates that password reset requests for an address are being throttled.
	ErrTooManyRequests = errors.New("too many requests")
)
