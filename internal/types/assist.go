package types

import (
	"github.com/go-playground/validator/v10"
)

// Wire contracts of the /ai/* text-assistance endpoints. Every response carries
// Success; on failure Error is set instead of the payload.

// GenerateSummaryRequest is the body of POST /ai/generate-summary.
type GenerateSummaryRequest struct {
	JobTitle        string `json:"job_title" validate:"required"`
	ExperienceYears string `json:"experience_years"`
	KeySkills       string `json:"key_skills"`
}

// GenerateSummaryResponse is the reply of POST /ai/generate-summary.
type GenerateSummaryResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuggestSkillsRequest is the body of POST /ai/suggest-skills.
type SuggestSkillsRequest struct {
	JobTitle string `json:"job_title" validate:"required"`
}

// SkillSuggestions groups suggested skills by kind.
type SkillSuggestions struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// SuggestSkillsResponse is the reply of POST /ai/suggest-skills.
type SuggestSkillsResponse struct {
	Success bool              `json:"success"`
	Skills  *SkillSuggestions `json:"skills,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// ImproveBulletRequest is the body of POST /ai/improve-bullet.
type ImproveBulletRequest struct {
	Bullet string `json:"bullet" validate:"required"`
}

// ImproveBulletResponse is the reply of POST /ai/improve-bullet.
type ImproveBulletResponse struct {
	Success  bool   `json:"success"`
	Improved string `json:"improved,omitempty"`
	Error    string `json:"error,omitempty"`
}

// CheckGrammarRequest is the body of POST /ai/check-grammar.
type CheckGrammarRequest struct {
	Text string `json:"text" validate:"required"`
}

// CheckGrammarResponse is the reply of POST /ai/check-grammar.
type CheckGrammarResponse struct {
	Success    bool   `json:"success"`
	HasChanges bool   `json:"has_changes"`
	Corrected  string `json:"corrected,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RewriteToneRequest is the body of POST /ai/rewrite-tone.
type RewriteToneRequest struct {
	Text string `json:"text" validate:"required"`
	Tone string `json:"tone" validate:"required"`
}

// RewriteToneResponse is the reply of POST /ai/rewrite-tone.
type RewriteToneResponse struct {
	Success   bool   `json:"success"`
	Rewritten string `json:"rewritten,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Validate validates the GenerateSummaryRequest using the validator.
func (r *GenerateSummaryRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SuggestSkillsRequest using the validator.
func (r *SuggestSkillsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ImproveBulletRequest using the validator.
func (r *ImproveBulletRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CheckGrammarRequest using the validator.
func (r *CheckGrammarRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RewriteToneRequest using the validator.
func (r *RewriteToneRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
