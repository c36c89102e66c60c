package form

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InputDateLayout is the layout of date input values.
const InputDateLayout = "2006-01-02"

// DateState is the per-entry state of the date range validator.
type DateState int

// Date range validator states.
//
//	Unset         no complete range yet
//	ValidRange    start and end set, start <= end
//	Invalid       an end date before start was committed and cleared; held until the next commit
//	CurrentActive "currently working here" is on; end is cleared and disabled
const (
	Unset DateState = iota
	ValidRange
	Invalid
	CurrentActive
)

func (s DateState) String() string {
	switch s {
	case ValidRange:
		return "valid_range"
	case Invalid:
		return "invalid"
	case CurrentActive:
		return "current_active"
	default:
		return "unset"
	}
}

// EndDatePolicy decides whether the end date of a non-current entry is required.
type EndDatePolicy string

// End date policies
const (
	EndDateRequired EndDatePolicy = "required"
	EndDateOptional EndDatePolicy = "optional"
)

// ParseEndDatePolicy parses "required" or "optional".
func ParseEndDatePolicy(s string) (EndDatePolicy, error) {
	switch EndDatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case EndDateRequired:
		return EndDateRequired, nil
	case EndDateOptional, "":
		return EndDateOptional, nil
	}
	return "", fmt.Errorf("invalid end date policy %q: want required or optional", s)
}

// SetStart commits a start date. The start date becomes the minimum selectable
// end date; an existing end date that now precedes it is cleared and a
// *DateOrderError is returned.
func (s *State) SetStart(ref uuid.UUID, value string) error {
	e, err := s.datedEntry(ref)
	if err != nil {
		return err
	}
	if err := checkDate(e.FieldName(AttrStart), value); err != nil {
		return err
	}

	e.values[AttrStart] = value
	e.MinEnd = value
	return s.settle(e)
}

// SetEnd commits an end date. An end date before the start date is cleared and
// a *DateOrderError is returned. Committing to a disabled end input fails with
// ErrFieldDisabled.
func (s *State) SetEnd(ref uuid.UUID, value string) error {
	e, err := s.datedEntry(ref)
	if err != nil {
		return err
	}
	if e.EndDisabled {
		return fmt.Errorf("%s: %w", e.FieldName(AttrEnd), ErrFieldDisabled)
	}
	if err := checkDate(e.FieldName(AttrEnd), value); err != nil {
		return err
	}

	e.values[AttrEnd] = value
	return s.settle(e)
}

// SetCurrent toggles "currently working here" on a work entry. Turning it on
// clears and disables the end date; turning it off re-enables it.
func (s *State) SetCurrent(ref uuid.UUID, on bool) error {
	e, ok := s.Entry(ref)
	if !ok {
		return &EntryNotFoundError{Ref: ref}
	}
	if e.Kind != KindWork {
		return ErrCurrentNotSupported
	}

	e.Current = on
	e.EndDisabled = on
	if on {
		e.values[AttrEnd] = ""
	}
	e.InlineError = ""
	e.DateState = evaluate(e)
	return nil
}

// EndRequired reports whether e's end date takes part in the required-field check.
func (s *State) EndRequired(e *Entry) bool {
	return e.Kind.hasDates() && !e.Current && s.policy == EndDateRequired
}

// RequiredMissing returns the names of required fields that are empty, in page order.
func (s *State) RequiredMissing() []string {
	var missing []string
	for _, kind := range Kinds {
		for _, e := range s.sections[kind] {
			for _, attr := range kindSchemas[kind].required {
				if strings.TrimSpace(e.values[attr]) == "" {
					missing = append(missing, e.FieldName(attr))
				}
			}
			if s.EndRequired(e) && e.values[AttrEnd] == "" {
				missing = append(missing, e.FieldName(AttrEnd))
			}
		}
	}
	return missing
}

// InlineErrors returns the inline error text per entry field name of its end date.
func (s *State) InlineErrors() map[string]string {
	errs := make(map[string]string)
	for _, kind := range Kinds {
		for _, e := range s.sections[kind] {
			if e.InlineError != "" {
				errs[e.FieldName(AttrEnd)] = e.InlineError
			}
		}
	}
	return errs
}

// settle applies the start <= end rule after a committed change.
func (s *State) settle(e *Entry) error {
	start, end := e.values[AttrStart], e.values[AttrEnd]
	if start != "" && end != "" && end < start {
		e.values[AttrEnd] = ""
		e.DateState = Invalid
		orderErr := &DateOrderError{Field: e.FieldName(AttrEnd), Start: start, End: end}
		e.InlineError = orderErr.Notice()
		return orderErr
	}
	e.InlineError = ""
	e.DateState = evaluate(e)
	return nil
}

func evaluate(e *Entry) DateState {
	switch {
	case e.Current:
		return CurrentActive
	case e.values[AttrStart] != "" && e.values[AttrEnd] != "":
		return ValidRange
	default:
		return Unset
	}
}

func (s *State) datedEntry(ref uuid.UUID) (*Entry, error) {
	e, ok := s.Entry(ref)
	if !ok {
		return nil, &EntryNotFoundError{Ref: ref}
	}
	if !e.Kind.hasDates() {
		return nil, &FieldNameError{Name: e.FieldName(AttrStart), Message: "section has no date range"}
	}
	return e, nil
}

// checkDate accepts "" (cleared input) or a YYYY-MM-DD date.
func checkDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(InputDateLayout, value); err != nil {
		return &DateFormatError{Field: field, Value: value, Cause: err}
	}
	return nil
}
