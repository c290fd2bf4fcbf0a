package model

import "errors"

// Caller-contract errors.
// They are returned when an action references something outside the fixed
// sets of the data model. Call sites wrap them with the offending value, so
// use errors.Is to check for them.
var (
	// ErrUnknownCategory is returned for a category outside the five known ones.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownRequirement is returned for a requirement outside the five known ones.
	ErrUnknownRequirement = errors.New("unknown requirement")

	// ErrIndexOutOfRange is returned when an instance position is outside
	// the requirement's current instance list.
	ErrIndexOutOfRange = errors.New("instance position out of range")
)
