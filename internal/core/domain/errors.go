// internal/core/domain/errors.go
package domain

import "errors"

var (
	// ErrInvalidRecord is returned when an inventory record has out-of-range quantities
	ErrInvalidRecord = errors.New("invalid inventory record")
	// ErrInvalidProduct is returned when product input is malformed
	ErrInvalidProduct = errors.New("invalid product")
	// ErrNotFound is returned by strict lookups of unknown ids
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional update sees a newer record
	ErrConflict = errors.New("conflicting update")
	// ErrInvalidQuery is returned for malformed listing parameters
	ErrInvalidQuery = errors.New("invalid query")
)
