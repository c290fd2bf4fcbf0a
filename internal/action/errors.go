package action

import "errors"

var (
	// ErrUnknownKind is returned for an action kind outside the catalog.
	ErrUnknownKind = errors.New("unknown action kind")

	// ErrInvalidPayload is returned when an action payload cannot be decoded
	// or misses a required field.
	ErrInvalidPayload = errors.New("invalid action payload")
)
