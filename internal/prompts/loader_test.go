package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_WriterPrompts(t *testing.T) {
	ClearCache()

	keys, err := List(WriterFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"check-grammar", "generate-summary", "improve-bullet", "rewrite-tone", "suggest-skills"}, keys)

	prompt, err := Get(WriterFile, "improve-bullet")
	require.NoError(t, err)
	assert.Contains(t, prompt, "action verb")
}

func TestGet_Errors(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.ErrorContains(t, err, "failed to read prompt file")

	_, err = Get(WriterFile, "nonexistent-key")
	assert.ErrorContains(t, err, "not found")

	assert.Panics(t, func() { MustGet("nonexistent.json", "k") })
}

func TestRender(t *testing.T) {
	prompt, err := Render(WriterFile, "generate-summary", map[string]string{
		"JobTitle":        "Data Engineer",
		"ExperienceYears": "6",
		"KeySkills":       "Spark, SQL",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, `"Data Engineer" and 6 years of experience`)
	assert.Contains(t, prompt, "Spark, SQL")

	prompt, err = Render(WriterFile, "generate-summary", map[string]string{
		"JobTitle":        "Data Engineer",
		"ExperienceYears": "",
		"KeySkills":       "",
	})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "years of experience")
}

func TestRender_MissingKey(t *testing.T) {
	_, err := Render(WriterFile, "rewrite-tone", map[string]string{"Text": "x"})
	assert.ErrorContains(t, err, "failed to render prompt")
}

func TestCaching(t *testing.T) {
	ClearCache()

	first, err := Get(WriterFile, "rewrite-tone")
	require.NoError(t, err)
	second, err := Get(WriterFile, "rewrite-tone")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
