package gramcheck

import "errors"

var (
	// ErrEmptyText is returned when there is nothing to correct.
	ErrEmptyText = errors.New("gramcheck: empty text")
	// ErrNoCorrectors is returned by Vote without members.
	ErrNoCorrectors = errors.New("gramcheck: vote needs at least one corrector")
)
