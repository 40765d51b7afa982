package jsonx

import (
	"log/slog"
	"net/http"

	"github.com/httpkit/jsonx/pkg/logger"
)

// Response renders itself to an http.ResponseWriter. JSON[T] implements it
// for the success path; applications may return any custom implementation.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc is a typed request handler receiving the decoded body.
type HandlerFunc[T any] func(r *http.Request, body *JSON[T]) Response

// Handle adapts a typed handler to http.HandlerFunc. The body is decoded
// without semantic validation; extraction failures are rendered through
// WriteError before fn is ever called.
//
// Example:
//
//	mux.Handle("POST /todos", jsonx.Handle(func(r *http.Request, body *jsonx.JSON[CreateTodo]) jsonx.Response {
//		todo := create(body.Value)
//		return jsonx.JSON[Todo]{Value: todo}
//	}))
func Handle[T any](fn HandlerFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := Decode[T](r)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		serve(w, r, fn(r, body))
	}
}

// HandleValidated is Handle with the body's declarative ruleset applied
// after a successful parse.
func HandleValidated[T Validatable](fn HandlerFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := DecodeValidated[T](r)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		serve(w, r, fn(r, body))
	}
}

func serve(w http.ResponseWriter, r *http.Request, resp Response) {
	cfg := ConfigFromContext(r.Context())
	if resp == nil {
		WriteError(w, r, ErrNilResponse)
		return
	}
	if err := resp.Render(w, r); err != nil {
		// Headers are already out; all that is left is a record of the failure.
		cfg.logger().LogAttrs(r.Context(), slog.LevelError, "response render failed",
			logger.Error(err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("jsonx"),
		)
	}
}
