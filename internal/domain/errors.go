package domain

import "errors"

var (
	// ErrValidationFailed is returned when a batch has no record passing the schema gate
	ErrValidationFailed = errors.New("validation failed")

	// ErrStoreWrite is returned when an insert or delete against the store fails
	ErrStoreWrite = errors.New("store write failed")

	// ErrExternalCollaborator is returned when an export or import against the platform fails
	ErrExternalCollaborator = errors.New("external collaborator failed")

	// ErrUnknownCategory is returned for a category with no registered spec
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidRegion is returned for a region with a missing label or a bad pattern
	ErrInvalidRegion = errors.New("invalid region")

	// ErrLockNotAcquired is returned when a rotation lock is held by someone else
	ErrLockNotAcquired = errors.New("lock not acquired")
)
