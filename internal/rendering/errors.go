// Package rendering turns a CV document into printable HTML and exports it to PDF.
package rendering

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TemplateError is a failure parsing or executing the print template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return "template error: " + e.Message
}

func (e *TemplateError) Unwrap() error { return e.Cause }

// PDFError is a failure inside the headless browser. Timeout is the budget
// the export ran under.
type PDFError struct {
	Message string
	Timeout time.Duration
	Cause   error
}

// TimedOut reports whether the browser ran out of time.
func (e *PDFError) TimedOut() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

func (e *PDFError) Error() string {
	if e.TimedOut() && e.Timeout > 0 {
		return fmt.Sprintf("pdf export timed out after %s: %s", e.Timeout, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("pdf export error: %s: %v", e.Message, e.Cause)
	}
	return "pdf export error: " + e.Message
}

func (e *PDFError) Unwrap() error { return e.Cause }
