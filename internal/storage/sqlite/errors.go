package sqlite

import "errors"

var (
	// ErrInvalidRecord indicates a match record missing required fields.
	ErrInvalidRecord = errors.New("invalid match record")
	// ErrRecordNotFound indicates that a match record cannot be found.
	ErrRecordNotFound = errors.New("match record not found")
)
