// Package services defines the business logic for products and accounts.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the boundary
// by the error classifier.
package services

import "errors"

var (
	// ErrInvalidCredentials is returned when a login attempt fails, either
	// because the account does not exist or the password does not match.
	// Callers must not distinguish the two cases.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUserNotFound indicates that the requested account does not exist.
	ErrUserNotFound = errors.New("user not found")
)
