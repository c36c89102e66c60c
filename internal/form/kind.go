// Package form holds the in-memory model behind the CV form: repeatable sections,
// named field access, date range validation, and serialization into a Document.
package form

import (
	"fmt"
	"strings"
)

// Kind identifies a repeatable section. Its value is the field name prefix.
type Kind string

// Section kinds
const (
	KindWork          Kind = "work"
	KindEducation     Kind = "edu"
	KindCertification Kind = "cert"
)

// Attribute names shared by the section schemas.
const (
	AttrStart   = "start"
	AttrEnd     = "end"
	AttrCurrent = "current"
)

// Kinds lists the section kinds in page order.
var Kinds = []Kind{KindWork, KindEducation, KindCertification}

type kindSchema struct {
	label      string   // ordinal label prefix ("Job #1")
	container  string   // element id of the section container in rendered markup
	attributes []string // every attribute, in render order
	include    []string // attributes that must be non-empty for serialization
	required   []string // attributes checked by RequiredMissing (end handled by policy)
	hasDates   bool
}

var kindSchemas = map[Kind]kindSchema{
	KindWork: {
		label:      "Job",
		container:  "workExperienceContainer",
		attributes: []string{"title", "company", "location", AttrStart, AttrEnd, AttrCurrent, "responsibilities"},
		include:    []string{"title", "company"},
		required:   []string{"title", "company", AttrStart},
		hasDates:   true,
	},
	KindEducation: {
		label:      "Education",
		container:  "educationContainer",
		attributes: []string{"degree", "field", "institution", "location", AttrStart, AttrEnd, "gpa"},
		include:    []string{"degree", "institution"},
		required:   []string{"degree", "field", "institution"},
		hasDates:   true,
	},
	KindCertification: {
		label:      "Certification",
		container:  "certificationsContainer",
		attributes: []string{"name", "org", "date"},
		include:    []string{"name"},
	},
}

// ParseKind accepts a field prefix or a human section name ("education", "certifications").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "job", "jobs", "work_experience", "experience":
		return KindWork, nil
	case "edu", "education":
		return KindEducation, nil
	case "cert", "certs", "certification", "certifications":
		return KindCertification, nil
	}
	return "", &UnknownKindError{Value: s}
}

// Valid reports whether k is a known section kind.
func (k Kind) Valid() bool {
	_, ok := kindSchemas[k]
	return ok
}

// Label returns the ordinal label prefix, e.g. "Job".
func (k Kind) Label() string {
	return kindSchemas[k].label
}

// Attributes returns the attribute names of the kind's entry schema.
func (k Kind) Attributes() []string {
	return append([]string(nil), kindSchemas[k].attributes...)
}

// HasAttribute reports whether attr belongs to the kind's schema.
func (k Kind) HasAttribute(attr string) bool {
	for _, a := range kindSchemas[k].attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// FieldName builds "<prefix>_<attribute>_<index>".
func (k Kind) FieldName(attr string, index int) string {
	return fmt.Sprintf("%s_%s_%d", k, attr, index)
}

func (k Kind) hasDates() bool {
	return kindSchemas[k].hasDates
}
