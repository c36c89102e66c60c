package types

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DisplayDateLayout is the layout of serialized Document dates ("Mar 5, 2023").
const DisplayDateLayout = "Jan 2, 2006"

var (
	documentValidator     *validator.Validate
	documentValidatorOnce sync.Once
)

func docValidator() *validator.Validate {
	documentValidatorOnce.Do(func() {
		documentValidator = validator.New()
		documentValidator.RegisterStructValidation(workStructValidation, WorkExperience{})
		documentValidator.RegisterStructValidation(educationStructValidation, Education{})
	})
	return documentValidator
}

// Validate checks the per-entry invariants of a Document: required entry fields,
// end date not before start date, and no end date on a current entry.
func (d *Document) Validate() error {
	return docValidator().Struct(d)
}

func workStructValidation(sl validator.StructLevel) {
	work := sl.Current().Interface().(WorkExperience)

	if work.Current && work.EndDate != "" {
		sl.ReportError(work.EndDate, "EndDate", "end_date", "absent_when_current", "")
		return
	}
	if endBeforeStart(work.StartDate, work.EndDate) {
		sl.ReportError(work.EndDate, "EndDate", "end_date", "after_start", "")
	}
}

func educationStructValidation(sl validator.StructLevel) {
	edu := sl.Current().Interface().(Education)

	if endBeforeStart(edu.StartDate, edu.EndDate) {
		sl.ReportError(edu.EndDate, "EndDate", "end_date", "after_start", "")
	}
}

// endBeforeStart reports whether both dates parse and end precedes start.
// Unparseable dates are not this validator's concern.
func endBeforeStart(startDate, endDate string) bool {
	if startDate == "" || endDate == "" {
		return false
	}
	start, startErr := time.Parse(DisplayDateLayout, startDate)
	end, endErr := time.Parse(DisplayDateLayout, endDate)
	if startErr != nil || endErr != nil {
		return false
	}
	return end.Before(start)
}
