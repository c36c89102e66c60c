package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	schema := OutputSchema{
		Name:        "Grammar",
		Description: "Fix grammar.",
		Fields: []SchemaField{
			{Name: "has_changes", Type: "boolean", Required: true},
			{Name: "corrected", Description: "corrected text"},
		},
	}

	prompt := BuildPrompt(schema, "I is here.")

	assert.Contains(t, prompt, "Fix grammar.")
	assert.Contains(t, prompt, `"has_changes": boolean (required),`)
	assert.Contains(t, prompt, `"corrected": "string" // corrected text`)
	assert.Contains(t, prompt, "\"\"\"\nI is here.\n\"\"\"")
}
