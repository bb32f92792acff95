package collections

import "errors"

var (
	// ErrAuthRequired is returned by every mutation attempted without an
	// active session. No local or remote state is touched.
	ErrAuthRequired = errors.New("no active session")

	// ErrUnknownCategory is returned when the category id is not in the
	// registry.
	ErrUnknownCategory = errors.New("unknown category")
)
