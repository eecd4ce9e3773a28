// Package apperrors defines the error kinds the engagement core can return.
// Services wrap these sentinels with context via fmt.Errorf and %w; handlers
// map them to HTTP statuses with errors.Is.
package apperrors

import "errors"

var (
	// ErrInsufficientPoints is returned when a spend exceeds the user's balance.
	ErrInsufficientPoints = errors.New("insufficient points")

	// ErrInvalidState is returned when a state transition is attempted from a
	// non-eligible state, e.g. approving an already-processed reward request.
	ErrInvalidState = errors.New("invalid state")

	// ErrDuplicateResponse is returned when a user answers a question they have
	// already answered.
	ErrDuplicateResponse = errors.New("duplicate response")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAnswer is returned when an answer does not fit the question
	// type, e.g. a rating outside 1-5.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrEmailInUse is returned on registration with an already-known email.
	ErrEmailInUse = errors.New("email already in use")
)
