package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/types"
)

type fakeClient struct {
	text    string
	json    string
	err     error
	prompts []string
	tiers   []llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.text, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	return f.json, f.err
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return "fake-" + string(tier) }
func (f *fakeClient) Close() error                       { return nil }

func newService(client *fakeClient) *Service {
	return New(client, zerolog.Nop())
}

func TestGenerateSummary(t *testing.T) {
	client := &fakeClient{text: "\"<p>Backend engineer with <b>6</b> years &amp; counting.</p>\""}
	svc := newService(client)

	summary, err := svc.GenerateSummary(context.Background(), &types.GenerateSummaryRequest{
		JobTitle: " Backend Engineer ", ExperienceYears: "6", KeySkills: "Go",
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer with 6 years & counting.", summary)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `"Backend Engineer" and 6 years`)
	assert.Equal(t, llm.TierStandard, client.tiers[0])
}

func TestGenerateSummary_RequiresJobTitle(t *testing.T) {
	client := &fakeClient{}
	_, err := newService(client).GenerateSummary(context.Background(), &types.GenerateSummaryRequest{JobTitle: "  "})

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Empty(t, client.prompts)
}

func TestSuggestSkills_CleansAndDedupes(t *testing.T) {
	client := &fakeClient{json: "Sure!\n{\"technical\": [\"Go\", \" Go\", \"<i>SQL</i>\", \"\"], \"soft\": [\"Mentoring\"]}"}

	skills, err := newService(client).SuggestSkills(context.Background(), &types.SuggestSkillsRequest{JobTitle: "Engineer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, skills.Technical)
	assert.Equal(t, []string{"Mentoring"}, skills.Soft)
	assert.Contains(t, client.prompts[0], `"technical": ["string"] (required)`)
	assert.Equal(t, llm.TierLite, client.tiers[0])
}

func TestSuggestSkills_InvalidJSON(t *testing.T) {
	client := &fakeClient{json: "no idea"}
	_, err := newService(client).SuggestSkills(context.Background(), &types.SuggestSkillsRequest{JobTitle: "Engineer"})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestImproveBullet_StripsMarkers(t *testing.T) {
	client := &fakeClient{text: "• Led migration of billing to Go"}

	improved, err := newService(client).ImproveBullet(context.Background(), &types.ImproveBulletRequest{Bullet: "- did billing stuff"})
	require.NoError(t, err)
	assert.Equal(t, "Led migration of billing to Go", improved)
	assert.Contains(t, client.prompts[0], "Bullet: did billing stuff")
}

func TestImproveBullet_ModelFailure(t *testing.T) {
	client := &fakeClient{err: errors.New("quota exceeded")}
	_, err := newService(client).ImproveBullet(context.Background(), &types.ImproveBulletRequest{Bullet: "did things"})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestCheckGrammar(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		changes   bool
		corrected string
	}{
		{"corrected", `{"has_changes": true, "corrected": "I am here."}`, true, "I am here."},
		{"clean", `{"has_changes": false, "corrected": "I is here."}`, false, "I is here."},
		{"claims change but identical", `{"has_changes": true, "corrected": "I is here."}`, false, "I is here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{json: tt.reply}
			changes, corrected, err := newService(client).CheckGrammar(context.Background(), &types.CheckGrammarRequest{Text: " I is here. "})
			require.NoError(t, err)
			assert.Equal(t, tt.changes, changes)
			assert.Equal(t, tt.corrected, corrected)
		})
	}
}

func TestRewriteTone(t *testing.T) {
	client := &fakeClient{text: "I deliver results."}

	out, err := newService(client).RewriteTone(context.Background(), &types.RewriteToneRequest{Text: "I do work.", Tone: "Confident"})
	require.NoError(t, err)
	assert.Equal(t, "I deliver results.", out)
	assert.Contains(t, client.prompts[0], "in a confident tone")

	_, err = newService(client).RewriteTone(context.Background(), &types.RewriteToneRequest{Text: "I do work."})
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestEmptyModelOutput(t *testing.T) {
	client := &fakeClient{text: "<script>alert(1)</script>"}
	_, err := newService(client).RewriteTone(context.Background(), &types.RewriteToneRequest{Text: "x", Tone: "formal"})
	assert.ErrorContains(t, err, "no text")
}
