package jsonx

import (
	"errors"
	"fmt"
)

// Common extraction errors
var (
	// ErrUnsupportedContentType indicates the request declared a media type
	// that is neither JSON nor accepted by the configured predicate, or the
	// Content-Type header is missing while the config requires one.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrNilResponse indicates a typed handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
)

// KnownLengthError is returned when the Content-Length header alone already
// exceeds the configured limit. The body stream is never read in this case.
type KnownLengthError struct {
	Length int64
	Limit  int64
}

func (e *KnownLengthError) Error() string {
	return fmt.Sprintf("declared request body length %d exceeds limit of %d bytes", e.Length, e.Limit)
}

// OverflowError is returned when the accumulated body crosses the configured
// limit mid-stream. Detection happens at the first chunk that would cross the
// threshold; the oversized payload is never buffered in full.
type OverflowError struct {
	Limit int64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("request body exceeds limit of %d bytes", e.Limit)
}

// DecodeError wraps a JSON parse failure of the request body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON request body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SerializeError wraps a JSON marshal failure on the response path.
type SerializeError struct {
	Err error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("failed to serialize response body: %v", e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }
