package assist

import (
	"errors"
	"fmt"
)

// ErrMissingInput is returned before any request is sent when a required input is empty.
var ErrMissingInput = errors.New("missing required input")

// MissingInputError names the empty input. It matches ErrMissingInput.
type MissingInputError struct {
	Field  string
	Notice string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}

// TransportError indicates the request never produced a decodable reply.
type TransportError struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("POST %s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("POST %s: %s", e.Endpoint, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// FailureError carries a success:false reason out of Result.Get.
type FailureError struct {
	Reason string
}

func (e *FailureError) Error() string {
	return e.Reason
}

// SubmitError indicates a non-2xx reply to a document submission.
type SubmitError struct {
	StatusCode int
	Message    string
}

func (e *SubmitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("preview submission failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("preview submission failed with status %d", e.StatusCode)
}

// Notice returns the text shown to the user for err, matching what the form
// would display in a blocking notice.
func Notice(err error) string {
	var missing *MissingInputError
	if errors.As(err, &missing) && missing.Notice != "" {
		return missing.Notice
	}
	var failure *FailureError
	if errors.As(err, &failure) {
		return "Error: " + failure.Reason
	}
	var transport *TransportError
	if errors.As(err, &transport) && transport.Cause != nil {
		return "Error: " + transport.Cause.Error()
	}
	return "Error: " + err.Error()
}
