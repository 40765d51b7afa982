package jsonx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/httpkit/jsonx/pkg/validator"
)

// ErrorDetail is the error payload rendered by WriteError.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// errorResponse wraps ErrorDetail in the response envelope.
type errorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// Status maps an extraction failure to an HTTP status code:
//
//	unsupported or missing content type  -> 415
//	declared or actual body over limit   -> 413
//	malformed JSON                       -> 400
//	rule violations                      -> 422
//	response serialization failure       -> 500
//
// Any other error (a transport failure surfaced by the body stream) maps to
// 400, since the request could not be read in full.
func Status(err error) int {
	var (
		knownLength *KnownLengthError
		overflow    *OverflowError
		decodeErr   *DecodeError
		validation  validator.ValidationErrors
		serialize   *SerializeError
	)
	switch {
	case errors.Is(err, ErrUnsupportedContentType):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &knownLength), errors.As(err, &overflow):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &decodeErr):
		return http.StatusBadRequest
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &serialize), errors.Is(err, ErrNilResponse):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// WriteError renders err as a structured JSON error response with the status
// from Status. Validation failures carry the complete per-field violation
// map; nothing is truncated to the first offending field.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	detail := &ErrorDetail{
		Code:    errorCode(status),
		Message: err.Error(),
	}

	var validation validator.ValidationErrors
	if errors.As(err, &validation) && !validation.IsEmpty() {
		detail.Details = make(map[string][]string, len(validation.Fields()))
		for _, field := range validation.Fields() {
			detail.Details[field] = validation.Get(field)
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// The envelope contains only strings; encoding cannot fail here short of
	// the client going away, in which case there is nobody left to tell.
	_ = json.NewEncoder(w).Encode(errorResponse{Error: detail})
}

func errorCode(status int) string {
	switch status {
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusRequestEntityTooLarge:
		return "request_entity_too_large"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusInternalServerError:
		return "internal_error"
	default:
		return "bad_request"
	}
}
