package form

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrCurrentNotSupported is returned when "currently active" is toggled on a
// section kind that has no such flag.
var ErrCurrentNotSupported = errors.New("current flag is only supported on work entries")

// ErrFieldDisabled is returned when a value is committed to a disabled input,
// such as the end date of a current job.
var ErrFieldDisabled = errors.New("field is disabled")

// EntryNotFoundError indicates that an entry reference does not match any visible entry.
type EntryNotFoundError struct {
	Kind Kind
	Ref  uuid.UUID
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("%s entry not found: %s", e.Kind, e.Ref)
}

// UnknownKindError indicates an unrecognized section kind.
type UnknownKindError struct {
	Value string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown section kind: %q", e.Value)
}

// FieldNameError indicates a field name that does not address any field.
type FieldNameError struct {
	Name    string
	Message string
}

func (e *FieldNameError) Error() string {
	return fmt.Sprintf("invalid field name %q: %s", e.Name, e.Message)
}

// DateFormatError indicates a date value that is not YYYY-MM-DD.
type DateFormatError struct {
	Field string
	Value string
	Cause error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date for %s: %q", e.Field, e.Value)
}

func (e *DateFormatError) Unwrap() error {
	return e.Cause
}

// DateOrderError is raised when an end date would precede the start date. The
// offending end value has already been cleared when this is returned.
type DateOrderError struct {
	Field string // name of the cleared end date field
	Start string
	End   string
}

func (e *DateOrderError) Error() string {
	return fmt.Sprintf("%s: end date %s is before start date %s", e.Field, e.End, e.Start)
}

// Notice is the user-facing text for the blocking notice.
func (e *DateOrderError) Notice() string {
	return "End date cannot be before start date."
}
