package schema

import "fmt"

// ValidationError reports a Document constraint violated at construction time.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema: invalid %s: %s", e.Field, e.Message)
}
