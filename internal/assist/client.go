// Package assist is the client side of the text-assistance endpoints. It sends
// one request per operation, maps replies to tagged results, and manages the
// busy state of the field a call originates from.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/types"
)

// Endpoint paths
const (
	PathGenerateSummary = "/ai/generate-summary"
	PathSuggestSkills   = "/ai/suggest-skills"
	PathImproveBullet   = "/ai/improve-bullet"
	PathCheckGrammar    = "/ai/check-grammar"
	PathRewriteTone     = "/ai/rewrite-tone"
	PathPreview         = "/preview"
)

// DefaultBatchConcurrency keeps batch improvement strictly sequential.
const DefaultBatchConcurrency = 1

// Options configures a Client.
type Options struct {
	HTTPClient       *http.Client
	BatchConcurrency int
	Logger           *zerolog.Logger
}

// Client issues assist and submission requests against one base URL.
// It never retries and sets no timeout of its own.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	concurrency int
	logger      zerolog.Logger
}

// NewClient creates a Client for baseURL (e.g. "http://localhost:8080").
func NewClient(baseURL string, opts *Options) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  http.DefaultClient,
		concurrency: DefaultBatchConcurrency,
		logger:      zerolog.Nop(),
	}
	if opts != nil {
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		if opts.BatchConcurrency > 0 {
			c.concurrency = opts.BatchConcurrency
		}
		if opts.Logger != nil {
			c.logger = *opts.Logger
		}
	}
	return c
}

// GrammarCheck is the payload of a grammar check.
type GrammarCheck struct {
	HasChanges bool
	Corrected  string
}

// GenerateSummary drafts a professional summary.
func (c *Client) GenerateSummary(ctx context.Context, jobTitle, experienceYears, keySkills string) (Result[string], error) {
	if strings.TrimSpace(jobTitle) == "" {
		return Result[string]{}, &MissingInputError{Field: "job_title", Notice: "Please enter your job title"}
	}
	req := types.GenerateSummaryRequest{JobTitle: jobTitle, ExperienceYears: experienceYears, KeySkills: keySkills}
	resp, res, err := post[types.GenerateSummaryResponse](ctx, c, PathGenerateSummary, req)
	if err != nil || !res.IsOk() {
		return Result[string]{reason: res.reason}, err
	}
	return Ok(resp.Summary), nil
}

// SuggestSkills proposes technical and soft skills for a job title.
func (c *Client) SuggestSkills(ctx context.Context, jobTitle string) (Result[types.SkillSuggestions], error) {
	if strings.TrimSpace(jobTitle) == "" {
		return Result[types.SkillSuggestions]{}, &MissingInputError{Field: "job_title", Notice: "Please enter a job title"}
	}
	resp, res, err := post[types.SuggestSkillsResponse](ctx, c, PathSuggestSkills, types.SuggestSkillsRequest{JobTitle: jobTitle})
	if err != nil || !res.IsOk() {
		return Result[types.SkillSuggestions]{reason: res.reason}, err
	}
	skills := types.SkillSuggestions{Technical: []string{}, Soft: []string{}}
	if resp.Skills != nil {
		if resp.Skills.Technical != nil {
			skills.Technical = resp.Skills.Technical
		}
		if resp.Skills.Soft != nil {
			skills.Soft = resp.Skills.Soft
		}
	}
	return Ok(skills), nil
}

// ImproveBullet rewrites one bullet.
func (c *Client) ImproveBullet(ctx context.Context, text string) (Result[string], error) {
	if strings.TrimSpace(text) == "" {
		return Result[string]{}, &MissingInputError{Field: "bullet", Notice: "Please enter some text first"}
	}
	resp, res, err := post[types.ImproveBulletResponse](ctx, c, PathImproveBullet, types.ImproveBulletRequest{Bullet: strings.TrimSpace(text)})
	if err != nil || !res.IsOk() {
		return Result[string]{reason: res.reason}, err
	}
	return Ok(resp.Improved), nil
}

// CheckGrammar returns corrected text when the service found changes.
func (c *Client) CheckGrammar(ctx context.Context, text string) (Result[GrammarCheck], error) {
	if strings.TrimSpace(text) == "" {
		return Result[GrammarCheck]{}, &MissingInputError{Field: "text", Notice: "Please enter some text first"}
	}
	resp, res, err := post[types.CheckGrammarResponse](ctx, c, PathCheckGrammar, types.CheckGrammarRequest{Text: strings.TrimSpace(text)})
	if err != nil || !res.IsOk() {
		return Result[GrammarCheck]{reason: res.reason}, err
	}
	return Ok(GrammarCheck{HasChanges: resp.HasChanges, Corrected: resp.Corrected}), nil
}

// RewriteTone rewrites text in the given tone.
func (c *Client) RewriteTone(ctx context.Context, text, tone string) (Result[string], error) {
	if strings.TrimSpace(text) == "" {
		return Result[string]{}, &MissingInputError{Field: "text", Notice: "Please enter some text first"}
	}
	if strings.TrimSpace(tone) == "" {
		return Result[string]{}, &MissingInputError{Field: "tone", Notice: "Please choose a tone"}
	}
	req := types.RewriteToneRequest{Text: strings.TrimSpace(text), Tone: tone}
	resp, res, err := post[types.RewriteToneResponse](ctx, c, PathRewriteTone, req)
	if err != nil || !res.IsOk() {
		return Result[string]{reason: res.reason}, err
	}
	return Ok(resp.Rewritten), nil
}

// envelope is the part every assist reply shares.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// post sends body as JSON and decodes the reply into Resp. A reply that is
// valid JSON is an application outcome whatever its status code; anything
// else is a *TransportError.
func post[Resp any](ctx context.Context, c *Client, path string, body any) (*Resp, Result[struct{}], error) {
	endpoint := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, Result[struct{}]{}, &TransportError{Endpoint: path, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, Result[struct{}]{}, &TransportError{Endpoint: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, Result[struct{}]{}, &TransportError{Endpoint: path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Result[struct{}]{}, &TransportError{Endpoint: path, Message: "failed to read response body", Cause: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, Result[struct{}]{}, &TransportError{
			Endpoint: path,
			Message:  fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
			Cause:    err,
		}
	}

	c.logger.Debug().Str("endpoint", path).Int("status", resp.StatusCode).Bool("success", env.Success).Msg("assist call settled")

	if !env.Success {
		return nil, Err[struct{}](env.Error), nil
	}

	var out Resp
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, Result[struct{}]{}, &TransportError{Endpoint: path, Message: "failed to decode response", Cause: err}
	}
	return &out, Ok(struct{}{}), nil
}
