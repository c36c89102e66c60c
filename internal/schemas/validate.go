// Package schemas validates CV documents against the embedded JSON Schema and
// the submission rules the preview and PDF routes rely on.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/cv-builder/internal/types"
	cvschema "github.com/jonathan/cv-builder/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Messages returns one line per error, e.g. "Name is required".
func (ve *ValidationError) Messages() []string {
	out := make([]string, len(ve.Errors))
	for i, e := range ve.Errors {
		if e.Field == "" {
			out[i] = e.Message
			continue
		}
		out[i] = e.Field + ": " + e.Message
	}
	return out
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// DocumentError indicates input that is not a JSON document at all.
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

const cvSchemaName = "cv.schema.json"

var (
	cvSchema     *gojsonschema.Schema
	cvSchemaErr  error
	cvSchemaOnce sync.Once
)

func compiledCV() (*gojsonschema.Schema, error) {
	cvSchemaOnce.Do(func() {
		cvSchema, cvSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(cvschema.CV))
	})
	if cvSchemaErr != nil {
		return nil, &SchemaLoadError{Path: cvSchemaName, Message: "invalid schema", Cause: cvSchemaErr}
	}
	return cvSchema, nil
}

// CVSchema returns the raw CV JSON Schema.
func CVSchema() []byte {
	return cvschema.CV
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{Path: "(string schema)", Message: "schema validation failed during load", Cause: err}
	}
	return toValidationError(result)
}

// ValidateCVJSON validates raw JSON against the CV schema.
func ValidateCVJSON(data []byte) error {
	if !json.Valid(data) {
		return &DocumentError{Message: "document is not valid JSON"}
	}
	schema, err := compiledCV()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &DocumentError{Message: "failed to read document", Cause: err}
	}
	return toValidationError(result)
}

// ValidateFile validates a JSON file against the CV schema and the submission rules.
func ValidateFile(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := ValidateCVJSON(data); err != nil {
		return nil, err
	}
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentError{Message: "failed to decode document", Cause: err}
	}
	doc.Normalize()
	return &doc, ValidateDocument(&doc)
}

// ValidateDocument applies the submission rules (name and email present), the
// CV schema, and the entry-level date rules. All failures are collected into
// one *ValidationError.
func ValidateDocument(doc *types.Document) error {
	verr := &ValidationError{}

	if strings.TrimSpace(doc.PersonalInfo.Name) == "" {
		verr.Errors = append(verr.Errors, FieldError{Message: "Name is required"})
	}
	if strings.TrimSpace(doc.PersonalInfo.Email) == "" {
		verr.Errors = append(verr.Errors, FieldError{Message: "Email is required"})
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return &DocumentError{Message: "failed to encode document", Cause: err}
	}
	if err := ValidateCVJSON(data); err != nil {
		var schemaErrs *ValidationError
		if !errors.As(err, &schemaErrs) {
			return err
		}
		verr.Errors = append(verr.Errors, schemaErrs.Errors...)
	}

	if err := doc.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.Errors = append(verr.Errors, FieldError{Field: fieldPath(fe), Message: ruleMessage(fe.Tag())})
		}
	}

	if len(verr.Errors) == 0 {
		return nil
	}
	return verr
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}

// fieldPath turns "Document.WorkExperience[0].EndDate" into "WorkExperience[0].EndDate".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func ruleMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "after_start":
		return "End date cannot be before start date."
	case "absent_when_current":
		return "must be empty for a current position"
	default:
		return "failed " + tag
	}
}
