package assist

// Result is the outcome of one assist call: either a payload or the reason the
// service gave for not producing one.
type Result[T any] struct {
	value  T
	reason string
	ok     bool
}

// Ok wraps a successful payload.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err wraps a failure reason.
func Err[T any](reason string) Result[T] {
	if reason == "" {
		reason = "unknown error"
	}
	return Result[T]{reason: reason}
}

// IsOk reports whether the call produced a payload.
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the payload; the zero value when the call failed.
func (r Result[T]) Value() T { return r.value }

// Reason returns the failure reason; "" on success.
func (r Result[T]) Reason() string { return r.reason }

// Get returns the payload, or a *FailureError carrying the reason.
func (r Result[T]) Get() (T, error) {
	if !r.ok {
		var zero T
		return zero, &FailureError{Reason: r.reason}
	}
	return r.value, nil
}
