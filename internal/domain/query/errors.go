package query

import "errors"

// ErrInvalidPage is matched by every ValidationError.
var ErrInvalidPage = errors.New("invalid pagination")

// ValidationError is a caller mistake in pagination parameters.
// Message is safe to return to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is reports whether target is ErrInvalidPage.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidPage }
