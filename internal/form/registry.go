package form

import (
	"strconv"
	"strings"
)

// Top-level field ids.
const (
	FieldName            = "name"
	FieldTitle           = "title"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldCity            = "city"
	FieldCountry         = "country"
	FieldLinkedIn        = "linkedin"
	FieldWebsite         = "website"
	FieldSummary         = "summary"
	FieldTechnicalSkills = "technical_skills"
	FieldSoftSkills      = "soft_skills"
)

// TopLevelFields lists the ids of the non-repeating inputs.
var TopLevelFields = []string{
	FieldName, FieldTitle, FieldEmail, FieldPhone, FieldCity, FieldCountry,
	FieldLinkedIn, FieldWebsite, FieldSummary, FieldTechnicalSkills, FieldSoftSkills,
}

func isTopLevel(id string) bool {
	for _, f := range TopLevelFields {
		if f == id {
			return true
		}
	}
	return false
}

// ParseFieldName splits "<prefix>_<attribute>_<index>" into its parts.
// Attributes may themselves contain underscores.
func ParseFieldName(name string) (Kind, string, int, error) {
	first := strings.Index(name, "_")
	last := strings.LastIndex(name, "_")
	if first < 0 || first == last {
		return "", "", 0, &FieldNameError{Name: name, Message: "expected <section>_<attribute>_<index>"}
	}

	kind := Kind(name[:first])
	if !kind.Valid() {
		return "", "", 0, &FieldNameError{Name: name, Message: "unknown section prefix"}
	}

	index, err := strconv.Atoi(name[last+1:])
	if err != nil || index < 0 {
		return "", "", 0, &FieldNameError{Name: name, Message: "index must be a non-negative integer"}
	}

	attr := name[first+1 : last]
	if !kind.HasAttribute(attr) {
		return "", "", 0, &FieldNameError{Name: name, Message: "unknown attribute"}
	}
	return kind, attr, index, nil
}

// Get reads a field by id or entry field name.
func (s *State) Get(name string) (string, error) {
	if isTopLevel(name) {
		return s.fields[name], nil
	}
	e, attr, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	return e.Value(attr), nil
}

// Set writes a field by id or entry field name. It is a plain accessor: date
// and current fields written here bypass the date validator, use SetStart,
// SetEnd and SetCurrent for committed user changes.
func (s *State) Set(name, value string) error {
	if isTopLevel(name) {
		s.fields[name] = value
		return nil
	}
	e, attr, err := s.resolve(name)
	if err != nil {
		return err
	}
	return e.setValue(attr, value)
}

// MustGet is Get for names known to be valid; unknown names read as "".
func (s *State) MustGet(name string) string {
	v, _ := s.Get(name)
	return v
}

func (s *State) resolve(name string) (*Entry, string, error) {
	kind, attr, index, err := ParseFieldName(name)
	if err != nil {
		return nil, "", err
	}
	entries := s.sections[kind]
	if index >= len(entries) {
		return nil, "", &FieldNameError{Name: name, Message: "no entry at index"}
	}
	return entries[index], attr, nil
}
