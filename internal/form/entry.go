package form

import (
	"fmt"

	"github.com/google/uuid"
)

// Entry is one item of a repeatable section. Index is its position among the
// visible entries of its kind and is embedded in every field name.
type Entry struct {
	ID    uuid.UUID
	Kind  Kind
	Index int

	// Current is the "currently working here" flag (work entries only).
	Current bool
	// EndDisabled mirrors the disabled state of the end date input.
	EndDisabled bool
	// MinEnd is the minimum selectable end date, set from the start date.
	MinEnd string
	// DateState is the date range validator state.
	DateState DateState
	// InlineError is the inline error text shown under the entry, if any.
	InlineError string

	values map[string]string
}

func newEntry(kind Kind, index int) *Entry {
	return &Entry{
		ID:     uuid.New(),
		Kind:   kind,
		Index:  index,
		values: make(map[string]string),
	}
}

// Label returns the visible ordinal label, e.g. "Job #2".
func (e *Entry) Label() string {
	return fmt.Sprintf("%s #%d", e.Kind.Label(), e.Index+1)
}

// FieldName returns the addressable name of one attribute of this entry.
func (e *Entry) FieldName(attr string) string {
	return e.Kind.FieldName(attr, e.Index)
}

// FieldNames returns every field name of this entry in render order.
func (e *Entry) FieldNames() []string {
	attrs := kindSchemas[e.Kind].attributes
	names := make([]string, len(attrs))
	for i, attr := range attrs {
		names[i] = e.FieldName(attr)
	}
	return names
}

// Value returns the raw value of attr. The current flag reads as "on" or "".
func (e *Entry) Value(attr string) string {
	if attr == AttrCurrent {
		if e.Current {
			return "on"
		}
		return ""
	}
	return e.values[attr]
}

// setValue stores a raw value without running the date validator.
func (e *Entry) setValue(attr, value string) error {
	if !e.Kind.HasAttribute(attr) {
		return &FieldNameError{Name: e.FieldName(attr), Message: "unknown attribute"}
	}
	if attr == AttrCurrent {
		e.Current = checked(value)
		return nil
	}
	e.values[attr] = value
	return nil
}

func checked(value string) bool {
	switch value {
	case "on", "true", "1", "yes", "checked":
		return true
	}
	return false
}
