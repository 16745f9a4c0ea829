// Package common defines sentinel errors shared by the client and server
// layers of DebtKeeper. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Storage errors.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidSnapshot    = errors.New("invalid snapshot")
	ErrCorruptData        = errors.New("stored data is corrupt")

	// State cache lifecycle errors.
	ErrNotLoaded     = errors.New("state not loaded")
	ErrAlreadyLoaded = errors.New("state already loaded")

	// Validation / referential errors.
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownAccount    = errors.New("unknown account")
	ErrLastAccount       = errors.New("cannot delete the last account")
	ErrDuplicateCategory = errors.New("category already exists")
)
