// Package services defines the business logic for industry inference
// and stored profiles. This file centralizes common service-level
// error values so that they can be consistently returned by service
// methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is
// performed at the handler layer.
package services

import "errors"

var (
	// ErrEmptyDescription is returned when a classification or profile
	// write is requested with a blank occupation description.
	ErrEmptyDescription = errors.New("description is empty")

	// ErrTooLong is returned when the description exceeds the maximum
	// configured length limit.
	ErrTooLong = errors.New("description too long")

	// ErrProfileNotFound indicates that the requested user has no
	// stored industry profile.
	ErrProfileNotFound = errors.New("industry profile not found")

	// ErrInvalidPath is returned when a profile write names a
	// (category, segment, niche) triple that is not a valid taxonomy
	// path.
	ErrInvalidPath = errors.New("invalid taxonomy path")

	// ErrInvalidConfidence is returned when a confidence value is
	// outside [0,1].
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

	// ErrInvalidSource is returned when a profile write carries an
	// unknown classification source.
	ErrInvalidSource = errors.New("invalid classification source")
)
