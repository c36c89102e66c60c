// Package types provides type definitions for structured data used throughout the cv-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Document is the normalized CV submitted to the preview collaborator.
// Every key is always present; empty sections serialize as [] rather than null.
type Document struct {
	PersonalInfo        PersonalInfo     `json:"personal_info"`
	ProfessionalSummary string           `json:"professional_summary"`
	WorkExperience      []WorkExperience `json:"work_experience" validate:"dive"`
	Education           []Education      `json:"education" validate:"dive"`
	Skills              Skills           `json:"skills"`
	Certifications      []Certification  `json:"certifications"`
	Projects            []any            `json:"projects"`
	References          []any            `json:"references"`
	Languages           []any            `json:"languages"`
}

// PersonalInfo holds contact details and the optional photo data URI.
type PersonalInfo struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
	LinkedIn string  `json:"linkedin"`
	Website  string  `json:"website"`
	PhotoURL string  `json:"photo_url"`
}

// Address is emitted in full even though only city and country are collected.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// WorkExperience is one serialized job entry. Dates are display formatted ("Mar 5, 2023").
type WorkExperience struct {
	JobTitle         string   `json:"job_title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	Location         string   `json:"location"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Current          bool     `json:"current"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

// Education is one serialized degree entry.
type Education struct {
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"field_of_study"`
	Institution  string `json:"institution" validate:"required"`
	Location     string `json:"location"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Current      bool   `json:"current"`
	GPA          string `json:"gpa"`
	Honors       string `json:"honors"`
}

// Skills holds the flat skill lists. Languages is always emitted empty.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Languages []string `json:"languages"`
}

// Certification is one serialized certification entry.
type Certification struct {
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuing_organization"`
	DateObtained        string `json:"date_obtained"`
	ExpiryDate          string `json:"expiry_date"`
	CredentialID        string `json:"credential_id"`
}

// NewDocument returns a Document with every slice initialized to empty.
func NewDocument() *Document {
	return &Document{
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Skills: Skills{
			Technical: []string{},
			Soft:      []string{},
			Languages: []string{},
		},
		Certifications: []Certification{},
		Projects:       []any{},
		References:     []any{},
		Languages:      []any{},
	}
}

// Normalize replaces nil slices with empty ones so a decoded Document keeps the
// always-present key shape when it is re-encoded.
func (d *Document) Normalize() {
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkExperience{}
	}
	for i := range d.WorkExperience {
		if d.WorkExperience[i].Responsibilities == nil {
			d.WorkExperience[i].Responsibilities = []string{}
		}
		if d.WorkExperience[i].Achievements == nil {
			d.WorkExperience[i].Achievements = []string{}
		}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills.Technical == nil {
		d.Skills.Technical = []string{}
	}
	if d.Skills.Soft == nil {
		d.Skills.Soft = []string{}
	}
	if d.Skills.Languages == nil {
		d.Skills.Languages = []string{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Projects == nil {
		d.Projects = []any{}
	}
	if d.References == nil {
		d.References = []any{}
	}
	if d.Languages == nil {
		d.Languages = []any{}
	}
}
