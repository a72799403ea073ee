// ABOUTME: Error taxonomy for the weather data access layer.
// ABOUTME: Callers match with errors.Is against these sentinels.
package storage

import "errors"

var (
	// ErrValidation is returned when a write carries an unnormalized date.
	ErrValidation = errors.New("validation failed")

	// ErrUnsupported is returned for unmatched resources and for the
	// operations the provider deliberately does not implement.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrOutOfRange is returned when a result set position does not exist.
	ErrOutOfRange = errors.New("position out of range")
)
