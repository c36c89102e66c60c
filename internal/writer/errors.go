package writer

import "fmt"

// InputError indicates a request the service refuses before calling the model.
type InputError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// GenerationError indicates the model call failed or returned unusable output.
type GenerationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
