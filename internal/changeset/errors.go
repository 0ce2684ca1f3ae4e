package changeset

import "fmt"

// ParseError represents a change-set document that could not be decoded
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("change-set parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("change-set parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
