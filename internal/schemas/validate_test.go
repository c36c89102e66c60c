package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/types"
)

func validDocument() *types.Document {
	doc := types.NewDocument()
	doc.PersonalInfo.Name = "Ada Lovelace"
	doc.PersonalInfo.Email = "ada@example.com"
	doc.WorkExperience = append(doc.WorkExperience, types.WorkExperience{
		JobTitle:         "Analyst",
		Company:          "Analytical Engines",
		StartDate:        "Jan 1, 1842",
		EndDate:          "Mar 5, 1843",
		Responsibilities: []string{"Wrote the first program"},
		Achievements:     []string{},
	})
	doc.Skills.Technical = []string{"Mathematics"}
	return doc
}

func TestCVSchema_Compiles(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal(CVSchema(), &v))
	_, err := compiledCV()
	require.NoError(t, err)
}

func TestValidateDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidateDocument(validDocument()))
}

func TestValidateDocument_RequiresNameAndEmail(t *testing.T) {
	doc := validDocument()
	doc.PersonalInfo.Name = ""
	doc.PersonalInfo.Email = " "

	err := ValidateDocument(doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Name is required", "Email is required"}, verr.Messages())
}

func TestValidateDocument_DateRules(t *testing.T) {
	doc := validDocument()
	doc.WorkExperience[0].EndDate = "Jan 1, 1800"

	err := ValidateDocument(doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, "WorkExperience[0].EndDate", verr.Errors[0].Field)
	assert.Equal(t, "End date cannot be before start date.", verr.Errors[0].Message)
}

func TestValidateDocument_SchemaRules(t *testing.T) {
	doc := validDocument()
	doc.WorkExperience[0].StartDate = "1842-01-01"
	doc.PersonalInfo.PhotoURL = "data:image/gif;base64,R0lGOD"

	err := ValidateDocument(doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "work_experience.0.start_date")
	assert.Contains(t, fields, "personal_info.photo_url")
}

func TestValidateCVJSON(t *testing.T) {
	err := ValidateCVJSON([]byte(`{"personal_info": {}}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)

	err = ValidateCVJSON([]byte(`{ invalid json }`))
	var docErr *DocumentError
	assert.ErrorAs(t, err, &docErr)
}

func TestValidateFile(t *testing.T) {
	data, err := json.Marshal(validDocument())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "cv.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	doc, err := ValidateFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", doc.PersonalInfo.Name)

	_, err = ValidateFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {"person": {"type": "object", "required": ["name"]}}
	}`

	assert.NoError(t, ValidateJSONString(schema, `{"person": {"name": "x"}}`))

	err := ValidateJSONString(schema, `{"person": {}}`)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "person", verr.Errors[0].Field)
	assert.Contains(t, verr.Error(), "validation failed")
}
