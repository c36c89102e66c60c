package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-builder/internal/photo"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/writer"
)

// RequestError indicates a malformed request body or form.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// UnavailableError indicates a feature that is not configured on this server.
type UnavailableError struct {
	Feature string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr      *RequestError
		unavailable *UnavailableError
		inputErr    *writer.InputError
		genErr      *writer.GenerationError
		validation  *schemas.ValidationError
		docErr      *schemas.DocumentError
		rejected    *photo.RejectedError
		decodeErr   *photo.DecodeError
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr), errors.As(err, &inputErr), errors.As(err, &validation),
		errors.As(err, &docErr), errors.As(err, &rejected), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	case errors.Is(err, preview.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text safe to show a client. Internal failures
// are reduced to a generic message; the full error is logged instead.
func publicMessage(err error) string {
	var (
		reqErr      *RequestError
		unavailable *UnavailableError
		inputErr    *writer.InputError
		genErr      *writer.GenerationError
		rejected    *photo.RejectedError
		decodeErr   *photo.DecodeError
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return "Request body too large"
	case errors.As(err, &reqErr):
		return reqErr.Message
	case errors.As(err, &inputErr):
		return inputErr.Message
	case errors.As(err, &genErr):
		return "The writing assistant could not complete the request. Please try again."
	case errors.As(err, &rejected):
		return rejected.Notice()
	case errors.As(err, &decodeErr):
		return decodeErr.Notice()
	case errors.As(err, &unavailable):
		return unavailable.Error()
	case errors.Is(err, preview.ErrNotFound):
		return "No preview found. Please submit the form first."
	default:
		return "Internal server error"
	}
}
