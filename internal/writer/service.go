// Package writer implements the text-assistance operations behind /ai/* on top
// of an LLM client. Model output is stripped of markup before it is returned.
package writer

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/prompts"
	"github.com/jonathan/cv-builder/internal/types"
)

// Operation names, matching the endpoint suffixes.
const (
	OpGenerateSummary = "generate-summary"
	OpSuggestSkills   = "suggest-skills"
	OpImproveBullet   = "improve-bullet"
	OpCheckGrammar    = "check-grammar"
	OpRewriteTone     = "rewrite-tone"
)

// Service runs assist operations against a model.
type Service struct {
	client llm.Client
	policy *bluemonday.Policy
	logger zerolog.Logger
}

// New creates a Service.
func New(client llm.Client, logger zerolog.Logger) *Service {
	return &Service{
		client: client,
		policy: bluemonday.StrictPolicy(),
		logger: logger.With().Str("component", "writer").Logger(),
	}
}

var skillsSchema = llm.OutputSchema{
	Name: "SkillSuggestions",
	Fields: []llm.SchemaField{
		{Name: "technical", Type: `["string"]`, Description: "technical skills", Required: true},
		{Name: "soft", Type: `["string"]`, Description: "soft skills", Required: true},
	},
}

var grammarSchema = llm.OutputSchema{
	Name: "GrammarCheck",
	Fields: []llm.SchemaField{
		{Name: "has_changes", Type: "boolean", Description: "true when any correction was made", Required: true},
		{Name: "corrected", Type: `"string"`, Description: "the full corrected text", Required: true},
	},
}

// GenerateSummary drafts a professional summary.
func (s *Service) GenerateSummary(ctx context.Context, req *types.GenerateSummaryRequest) (string, error) {
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if err := req.Validate(); err != nil {
		return "", &InputError{Operation: OpGenerateSummary, Message: "job title is required", Cause: err}
	}
	prompt, err := prompts.Render(prompts.WriterFile, OpGenerateSummary, map[string]string{
		"JobTitle":        req.JobTitle,
		"ExperienceYears": strings.TrimSpace(req.ExperienceYears),
		"KeySkills":       strings.TrimSpace(req.KeySkills),
	})
	if err != nil {
		return "", &GenerationError{Operation: OpGenerateSummary, Message: "failed to build prompt", Cause: err}
	}
	return s.text(ctx, OpGenerateSummary, prompt, llm.TierStandard)
}

// SuggestSkills proposes technical and soft skills for a job title.
func (s *Service) SuggestSkills(ctx context.Context, req *types.SuggestSkillsRequest) (*types.SkillSuggestions, error) {
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if err := req.Validate(); err != nil {
		return nil, &InputError{Operation: OpSuggestSkills, Message: "job title is required", Cause: err}
	}
	instructions, err := prompts.Render(prompts.WriterFile, OpSuggestSkills, map[string]string{"JobTitle": req.JobTitle})
	if err != nil {
		return nil, &GenerationError{Operation: OpSuggestSkills, Message: "failed to build prompt", Cause: err}
	}
	schema := skillsSchema
	schema.Description = instructions

	var out types.SkillSuggestions
	if err := s.json(ctx, OpSuggestSkills, llm.BuildPrompt(schema, req.JobTitle), llm.TierLite, &out); err != nil {
		return nil, err
	}
	return &types.SkillSuggestions{
		Technical: s.cleanList(out.Technical),
		Soft:      s.cleanList(out.Soft),
	}, nil
}

// ImproveBullet rewrites one résumé bullet.
func (s *Service) ImproveBullet(ctx context.Context, req *types.ImproveBulletRequest) (string, error) {
	req.Bullet = form.StripBullet(strings.TrimSpace(req.Bullet))
	if err := req.Validate(); err != nil {
		return "", &InputError{Operation: OpImproveBullet, Message: "bullet is required", Cause: err}
	}
	prompt, err := prompts.Render(prompts.WriterFile, OpImproveBullet, map[string]string{"Bullet": req.Bullet})
	if err != nil {
		return "", &GenerationError{Operation: OpImproveBullet, Message: "failed to build prompt", Cause: err}
	}
	improved, err := s.text(ctx, OpImproveBullet, prompt, llm.TierStandard)
	if err != nil {
		return "", err
	}
	return form.StripBullet(improved), nil
}

// CheckGrammar returns the corrected text and whether it differs from the input.
func (s *Service) CheckGrammar(ctx context.Context, req *types.CheckGrammarRequest) (bool, string, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := req.Validate(); err != nil {
		return false, "", &InputError{Operation: OpCheckGrammar, Message: "text is required", Cause: err}
	}
	instructions, err := prompts.Get(prompts.WriterFile, OpCheckGrammar)
	if err != nil {
		return false, "", &GenerationError{Operation: OpCheckGrammar, Message: "failed to build prompt", Cause: err}
	}
	schema := grammarSchema
	schema.Description = instructions

	var out struct {
		HasChanges bool   `json:"has_changes"`
		Corrected  string `json:"corrected"`
	}
	if err := s.json(ctx, OpCheckGrammar, llm.BuildPrompt(schema, req.Text), llm.TierLite, &out); err != nil {
		return false, "", err
	}

	corrected := s.sanitize(out.Corrected)
	if !out.HasChanges || corrected == "" || corrected == req.Text {
		return false, req.Text, nil
	}
	return true, corrected, nil
}

// RewriteTone rewrites text in the requested tone.
func (s *Service) RewriteTone(ctx context.Context, req *types.RewriteToneRequest) (string, error) {
	req.Text = strings.TrimSpace(req.Text)
	req.Tone = strings.TrimSpace(req.Tone)
	if err := req.Validate(); err != nil {
		return "", &InputError{Operation: OpRewriteTone, Message: "text and tone are required", Cause: err}
	}
	prompt, err := prompts.Render(prompts.WriterFile, OpRewriteTone, map[string]string{
		"Text": req.Text,
		"Tone": strings.ToLower(req.Tone),
	})
	if err != nil {
		return "", &GenerationError{Operation: OpRewriteTone, Message: "failed to build prompt", Cause: err}
	}
	return s.text(ctx, OpRewriteTone, prompt, llm.TierStandard)
}

func (s *Service) text(ctx context.Context, op, prompt string, tier llm.ModelTier) (string, error) {
	raw, err := s.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", op).Msg("model call failed")
		return "", &GenerationError{Operation: op, Message: "model call failed", Cause: err}
	}
	out := s.sanitize(raw)
	if out == "" {
		return "", &GenerationError{Operation: op, Message: "model returned no text"}
	}
	s.logger.Debug().Str("operation", op).Str("model", s.client.GetModel(tier)).Int("chars", len(out)).Msg("generated")
	return out, nil
}

func (s *Service) json(ctx context.Context, op, prompt string, tier llm.ModelTier, v any) error {
	raw, err := s.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", op).Msg("model call failed")
		return &GenerationError{Operation: op, Message: "model call failed", Cause: err}
	}
	if err := llm.DecodeJSON(raw, v); err != nil {
		return &GenerationError{Operation: op, Message: "model returned invalid JSON", Cause: err}
	}
	return nil
}

// sanitize strips markup and wrapping quotes.
func (s *Service) sanitize(text string) string {
	clean := html.UnescapeString(s.policy.Sanitize(text))
	clean = strings.TrimSpace(clean)
	if len(clean) >= 2 && clean[0] == '"' && clean[len(clean)-1] == '"' {
		clean = strings.TrimSpace(clean[1 : len(clean)-1])
	}
	return clean
}

func (s *Service) cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if item = s.sanitize(item); item != "" {
			cleaned = append(cleaned, item)
		}
	}
	return form.MergeSkills(cleaned, nil)
}
