package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks with errors.Is.
var (
	// ErrMissingColumn indicates a selected column does not exist in its table.
	ErrMissingColumn = errors.New("column not found")

	// ErrMissingField indicates a required user-input field was not supplied.
	ErrMissingField = errors.New("required field missing")
)

// MissingColumnError reports a column selection that does not match any
// header of the table it was selected for.
type MissingColumnError struct {
	Column string
	Table  string
}

func (e *MissingColumnError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column %q not found in %s table", e.Column, e.Table)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}

// Is implements errors.Is support.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// MissingFieldError reports an absent required user-input field. Report
// building fails rather than defaulting the field to blank, since a blank
// would be broadcast to every output row without any indication.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q missing", e.Field)
}

// Is implements errors.Is support.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
