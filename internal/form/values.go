package form

import (
	"net/url"
	"sort"
)

// FromValues builds a State from a posted form that follows the
// <section>_<attribute>_<index> naming convention. Entries are created for each
// index present, in ascending index order, then renumbered to 0..n-1. Date
// fields are committed through the date range validator; the errors it raises
// (cleared end dates, malformed dates) are returned alongside the state.
func FromValues(values url.Values, opts *Options) (*State, []error) {
	s := New(withoutSeed(opts))

	for _, id := range TopLevelFields {
		s.fields[id] = values.Get(id)
	}

	grouped := make(map[Kind]map[int]map[string]string)
	for name := range values {
		kind, attr, index, err := ParseFieldName(name)
		if err != nil {
			continue
		}
		if grouped[kind] == nil {
			grouped[kind] = make(map[int]map[string]string)
		}
		if grouped[kind][index] == nil {
			grouped[kind][index] = make(map[string]string)
		}
		grouped[kind][index][attr] = values.Get(name)
	}

	var notices []error
	for _, kind := range Kinds {
		indices := make([]int, 0, len(grouped[kind]))
		for index := range grouped[kind] {
			indices = append(indices, index)
		}
		sort.Ints(indices)

		for _, index := range indices {
			notices = append(notices, s.load(kind, grouped[kind][index])...)
		}
	}
	return s, notices
}

// load appends one entry and commits its values the way user edits would arrive.
func (s *State) load(kind Kind, attrs map[string]string) []error {
	e := s.AddEntry(kind)
	for attr, value := range attrs {
		switch attr {
		case AttrStart, AttrEnd, AttrCurrent:
			continue
		}
		e.values[attr] = value
	}

	if !kind.hasDates() {
		return nil
	}

	var errs []error
	if err := s.SetStart(e.ID, attrs[AttrStart]); err != nil {
		errs = append(errs, err)
	}
	if kind == KindWork && checked(attrs[AttrCurrent]) {
		if err := s.SetCurrent(e.ID, true); err != nil {
			errs = append(errs, err)
		}
		return errs
	}
	if err := s.SetEnd(e.ID, attrs[AttrEnd]); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func withoutSeed(opts *Options) *Options {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	o.SeedEntries = false
	return &o
}
