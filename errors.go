package gridfilter

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when translation is attempted for an entity
// type that was never registered. Check with errors.Is.
var ErrNotConfigured = errors.New("entity type is not configured")

// InvalidArgumentError reports a malformed configuration option or an
// unsupported special filter reference. Field names the offending option key
// or filter field.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument '%s': %s", e.Field, e.Reason)
}

func invalidArgument(field, format string, args ...any) error {
	return &InvalidArgumentError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
