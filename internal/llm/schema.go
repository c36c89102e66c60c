package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON object a prompt asks the model to return.
type OutputSchema struct {
	Name        string
	Description string // task instructions placed before the schema
	Fields      []SchemaField
}

// SchemaField is one key of the expected object.
type SchemaField struct {
	Name        string
	Type        string // type hint shown to the model, e.g. `["string"]`
	Description string
	Required    bool
}

// BuildPrompt renders instructions, the expected JSON shape, and the input text.
func BuildPrompt(schema OutputSchema, input string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\nReturn ONLY the JSON object, no markdown, no explanation.\n\n")

	sb.WriteString("Input:\n\"\"\"\n")
	sb.WriteString(input)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}
