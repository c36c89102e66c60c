package photo

import "fmt"

// Rejection reasons
const (
	ReasonType = "type"
	ReasonSize = "size"
)

// RejectedError indicates a file refused before decoding. The stored photo is unchanged.
type RejectedError struct {
	Filename string
	Reason   string
	Type     string
	Size     int64
}

func (e *RejectedError) Error() string {
	if e.Reason == ReasonSize {
		return fmt.Sprintf("photo %s rejected: %d bytes exceeds %d byte limit", e.Filename, e.Size, MaxSize)
	}
	return fmt.Sprintf("photo %s rejected: type %q is not allowed", e.Filename, e.Type)
}

// Notice is the user-facing text for the blocking notice.
func (e *RejectedError) Notice() string {
	if e.Reason == ReasonSize {
		return "File size must be less than 5MB."
	}
	return "Please upload a JPG or PNG image."
}

// DecodeError indicates the file passed validation but could not be read as an image.
type DecodeError struct {
	Filename string
	Cause    error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to decode photo %s: %v", e.Filename, e.Cause)
	}
	return fmt.Sprintf("failed to decode photo %s", e.Filename)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Notice is the user-facing text for the blocking notice.
func (e *DecodeError) Notice() string {
	return "Could not read the image file. Please try another photo."
}
