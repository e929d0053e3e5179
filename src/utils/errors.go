package utils

import "errors"

// Business rule failures surfaced to handlers. Anything else coming out of
// the helpers is either gorm.ErrRecordNotFound or a server error.
var (
	ErrVenueNotFound            = errors.New("venue not found")
	ErrVenueUnavailable         = errors.New("venue is not available")
	ErrDateConflict             = errors.New("venue is not available for this particular date")
	ErrInsufficientAvailability = errors.New("not enough tickets available")
	ErrHasDependents            = errors.New("record has dependent records")
	ErrInvalidState             = errors.New("event is not pending")
	ErrDuplicateEmail           = errors.New("email already exists")
	ErrInvalidCredentials       = errors.New("wrong credentials")
)
