package jsonx

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/httpkit/jsonx/pkg/logger"
)

// Validatable is implemented by request types that carry a declarative
// validation ruleset, typically built with the pkg/validator rule engine.
// Validate returns nil for a conforming value, or the complete set of
// field-level violations.
type Validatable interface {
	Validate() error
}

// Decode reads, size-checks and unmarshals the request body into T without
// semantic validation.
//
// The per-route Config is resolved from the request context (see Middleware),
// falling back to the process default. The content-type gate and the
// declared-length check both run before a single byte of the body is read.
//
// Example:
//
//	type CreateTodo struct {
//		Title string `json:"title"`
//	}
//
//	body, err := jsonx.Decode[CreateTodo](r)
//	if err != nil {
//		jsonx.WriteError(w, r, err)
//		return
//	}
//	todo := body.Value
func Decode[T any](r *http.Request) (*JSON[T], error) {
	var v T
	if err := decodeInto(r, &v, false); err != nil {
		return nil, err
	}
	return &JSON[T]{Value: v}, nil
}

// DecodeValidated is Decode followed by the value's declarative ruleset.
// The choice between validated and plain decoding is made at the call site
// through the type constraint; there is no runtime strategy switch.
//
// On rule violations the returned error is the full validator.ValidationErrors
// list, never truncated to the first failing field.
func DecodeValidated[T Validatable](r *http.Request) (*JSON[T], error) {
	var v T
	if err := decodeInto(r, &v, false); err != nil {
		return nil, err
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return &JSON[T]{Value: v}, nil
}

// decodeInto is the shared pipeline: content-type gate, declared-length fast
// path, bounded read, unmarshal, optional post-parse validation for the
// binder-style entry points.
func decodeInto(r *http.Request, v any, validate bool) error {
	cfg := ConfigFromContext(r.Context())
	log := cfg.logger()

	if err := checkContentType(r, cfg); err != nil {
		return err
	}

	if length, ok := declaredLength(r); ok && length > cfg.limit {
		return &KnownLengthError{Length: length, Limit: cfg.limit}
	}

	body, err := readBody(r.Context(), r.Body, cfg.limit, log)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		log.LogAttrs(r.Context(), slog.LevelError, "request body rejected",
			logger.Error(err),
			slog.String("body", preview(body)),
			logger.Component("jsonx"),
		)
		return &DecodeError{Err: err}
	}

	log.LogAttrs(r.Context(), slog.LevelDebug, "request body decoded",
		slog.String("body", preview(body)),
		logger.Component("jsonx"),
	)

	if validate {
		if val, ok := v.(Validatable); ok {
			if err := val.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkContentType runs the content-type gate once, before the body reader
// starts. A request passes when the declared media subtype is "json" or has a
// "+json" suffix, or when the configured predicate accepts it. A missing or
// unparseable Content-Type header passes only when the config does not
// require one.
func checkContentType(r *http.Request, cfg *Config) error {
	header := r.Header.Get("Content-Type")
	if header == "" {
		if cfg.contentTypeRequired {
			return ErrUnsupportedContentType
		}
		return nil
	}

	mediatype, params, err := mime.ParseMediaType(header)
	if err != nil {
		// Unparseable declarations get the same treatment as missing ones.
		if cfg.contentTypeRequired {
			return ErrUnsupportedContentType
		}
		return nil
	}

	if isJSONMediaType(mediatype) {
		return nil
	}
	if cfg.contentType != nil && cfg.contentType(mediatype, params) {
		return nil
	}
	return ErrUnsupportedContentType
}

// isJSONMediaType reports whether mediatype is a JSON type: the subtype is
// exactly "json" or carries a "+json" structured-syntax suffix.
func isJSONMediaType(mediatype string) bool {
	_, subtype, ok := strings.Cut(mediatype, "/")
	if !ok {
		return false
	}
	return subtype == "json" || strings.HasSuffix(subtype, "+json")
}

// Bind returns a binder-style function decoding the request body into v,
// for frameworks that thread binding through a func(r, any) error hook.
//
// Example:
//
//	http.HandleFunc("/users", frame.Wrap(handler,
//		frame.WithBinder(jsonx.Bind()),
//	))
func Bind() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return decodeInto(r, v, false)
	}
}

// BindValidated is Bind plus the value's declarative ruleset when the target
// implements Validatable. Targets without a ruleset pass through unchanged.
func BindValidated() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return decodeInto(r, v, true)
	}
}
