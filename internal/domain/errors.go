package domain

import "errors"

var (
	// ErrValidation reports malformed or missing caller input.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound reports a reference to a song that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSong reports a source URL already submitted this week.
	ErrDuplicateSong = errors.New("song already submitted this week")
)
