package domain

import "errors"

// ErrNamesExhausted is returned when the name-generation corpus has no
// candidates left. Practically unreachable with the default corpus,
// but a defined terminal condition rather than an infinite loop.
var ErrNamesExhausted = errors.New("name corpus exhausted")

// UserNotFoundError reports a caller-supplied identity that is not in
// the known user set. The message shape is part of the HTTP contract.
type UserNotFoundError struct {
	User string
}

func (e *UserNotFoundError) Error() string {
	return "user not found - " + e.User
}

// InvalidCoordinateError reports a coordinate outside the valid
// longitude/latitude ranges.
type InvalidCoordinateError struct {
	Reason string
}

func (e *InvalidCoordinateError) Error() string {
	return "invalid coordinate: " + e.Reason
}
