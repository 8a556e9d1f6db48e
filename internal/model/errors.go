package model

import "errors"

// Common domain errors.
var (
	// ErrUserNotFound is returned when no active user exists at the given id.
	// An inactive (soft-deleted) user is indistinguishable from an absent one.
	ErrUserNotFound = errors.New("user doesn't exist with this id")

	// ErrUnknownUserType is returned when an integer type code does not
	// resolve to one of the known user types.
	ErrUnknownUserType = errors.New("unknown user type")
)
