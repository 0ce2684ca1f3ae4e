package diffpath

import "fmt"

// SyntaxError represents a path string that does not follow the bracket grammar
type SyntaxError struct {
	Input   string
	Offset  int
	Message string
	Cause   error
}

func (e *SyntaxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("path syntax error at offset %d in %q: %s: %v", e.Offset, e.Input, e.Message, e.Cause)
	}
	return fmt.Sprintf("path syntax error at offset %d in %q: %s", e.Offset, e.Input, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}
