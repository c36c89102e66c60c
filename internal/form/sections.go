package form

import (
	"github.com/google/uuid"
)

// Options configures a form State.
type Options struct {
	// EndDatePolicy decides whether a non-current end date is a required field.
	EndDatePolicy EndDatePolicy
	// SeedEntries starts each section with one empty entry, as the page does.
	SeedEntries bool
}

// DefaultOptions returns the defaults used by the served form.
func DefaultOptions() *Options {
	return &Options{
		EndDatePolicy: EndDateOptional,
		SeedEntries:   true,
	}
}

// State is the form controller's model: top-level fields plus one ordered
// sequence of entries per section kind. Handlers receive it by reference.
type State struct {
	fields   map[string]string
	sections map[Kind][]*Entry
	policy   EndDatePolicy
}

// New creates a State. A nil opts uses DefaultOptions.
func New(opts *Options) *State {
	if opts == nil {
		opts = DefaultOptions()
	}
	policy := opts.EndDatePolicy
	if policy == "" {
		policy = EndDateOptional
	}

	s := &State{
		fields:   make(map[string]string),
		sections: make(map[Kind][]*Entry),
		policy:   policy,
	}
	if opts.SeedEntries {
		for _, kind := range Kinds {
			s.AddEntry(kind)
		}
	}
	return s
}

// Policy returns the configured end date policy.
func (s *State) Policy() EndDatePolicy {
	return s.policy
}

// AddEntry appends an entry at index = current count and returns it.
func (s *State) AddEntry(kind Kind) *Entry {
	e := newEntry(kind, len(s.sections[kind]))
	s.sections[kind] = append(s.sections[kind], e)
	return e
}

// RemoveEntry deletes the entry identified by ref and renumbers the rest of the
// section to 0..n-1. Removing the last entry leaves an empty section.
func (s *State) RemoveEntry(kind Kind, ref uuid.UUID) error {
	entries := s.sections[kind]
	for i, e := range entries {
		if e.ID != ref {
			continue
		}
		s.sections[kind] = append(entries[:i:i], entries[i+1:]...)
		s.Renumber(kind)
		return nil
	}
	return &EntryNotFoundError{Kind: kind, Ref: ref}
}

// Renumber assigns indices 0..n-1 in document order. Field names and labels are
// derived from the index, so running it on a contiguous section changes nothing.
func (s *State) Renumber(kind Kind) {
	for i, e := range s.sections[kind] {
		e.Index = i
	}
}

// Entries returns the visible entries of kind in document order.
func (s *State) Entries(kind Kind) []*Entry {
	return append([]*Entry(nil), s.sections[kind]...)
}

// Count returns the number of visible entries of kind.
func (s *State) Count(kind Kind) int {
	return len(s.sections[kind])
}

// Entry finds an entry by reference across all sections.
func (s *State) Entry(ref uuid.UUID) (*Entry, bool) {
	for _, kind := range Kinds {
		for _, e := range s.sections[kind] {
			if e.ID == ref {
				return e, true
			}
		}
	}
	return nil, false
}

// Names returns every field name of every entry of kind, grouped per entry.
func (s *State) Names(kind Kind) [][]string {
	entries := s.sections[kind]
	names := make([][]string, len(entries))
	for i, e := range entries {
		names[i] = e.FieldNames()
	}
	return names
}

// Labels returns the ordinal labels of kind's entries.
func (s *State) Labels(kind Kind) []string {
	entries := s.sections[kind]
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label()
	}
	return labels
}
