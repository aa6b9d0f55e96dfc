// Package common defines shared helpers and sentinel errors used across
// the guildchat core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Validation errors. These are returned before anything touches
	// storage; no partial state is ever written for them.
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidDisplayName = errors.New("invalid display name")
	ErrInvalidName        = errors.New("invalid name")
	ErrInvalidID          = errors.New("invalid id")
	ErrPasswordPolicy     = errors.New("password policy violation")

	// Authentication errors. ErrInvalidCredentials is deliberately the
	// same for an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Session lifecycle errors. Both trigger deletion of the offending
	// session record as a cleanup side effect of the failed lookup.
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")

	// ErrIntegrity marks a persisted record that fails structural
	// deserialization (missing salt, non-numeric timestamp, bad JSON).
	ErrIntegrity = errors.New("integrity error")
)
