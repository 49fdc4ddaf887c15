package radix

import "errors"

var (
	// ErrInvalidPath is returned when a pattern does not begin with '/'.
	ErrInvalidPath = errors.New("path must begin with '/'")

	// ErrWildcardNotLast is returned when '*' is not the final token of a pattern.
	ErrWildcardNotLast = errors.New("wildcard '*' must be the last token in a route, otherwise use a '{param}'")

	// ErrMissingCloseDelimiter is returned when a '{' has no matching '}'.
	ErrMissingCloseDelimiter = errors.New("route param closing delimiter '}' is missing")

	// ErrAdjacentParams is returned when two params are not separated by at least 1 char.
	ErrAdjacentParams = errors.New("the params must be separated by at least 1 char")

	// ErrInvalidRegex is returned when the regexp of a param does not compile.
	ErrInvalidRegex = errors.New("invalid param regexp")

	ErrNilHandler  = errors.New("nil handler")
	ErrEmptyMethod = errors.New("method must not be empty")
)

// PatternError describes a pattern rejected at registration time.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return e.Err.Error() + " in path '" + e.Pattern + "'"
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

func patternError(pattern string, err error) error {
	return &PatternError{Pattern: pattern, Err: err}
}
