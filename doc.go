// Package jsonx provides typed JSON request-body extraction for net/http
// with bounded memory, a content-type policy, and opt-in declarative
// validation.
//
// The extractor accumulates the request body chunk by chunk and aborts as
// soon as the configured size limit would be crossed, without ever buffering
// an oversized payload. When the Content-Length header alone already exceeds
// the limit, the body stream is never read at all.
//
// # Basic decoding
//
//	type CreateTodo struct {
//		Title string `json:"title"`
//	}
//
//	func createTodo(w http.ResponseWriter, r *http.Request) {
//		body, err := jsonx.Decode[CreateTodo](r)
//		if err != nil {
//			jsonx.WriteError(w, r, err)
//			return
//		}
//		// body.Value is the decoded CreateTodo
//	}
//
// # Decoding with validation
//
// Request types that implement Validatable get their ruleset applied after a
// successful parse. The selection between plain and validated decoding is
// made at the call site; there is no runtime strategy switch.
//
//	func (t CreateTodo) Validate() error {
//		return validator.Apply(
//			validator.RequiredString("title", t.Title),
//			validator.MaxLenString("title", t.Title, 100),
//		)
//	}
//
//	body, err := jsonx.DecodeValidated[CreateTodo](r)
//
// Rule violations surface as validator.ValidationErrors carrying every
// failing field, and WriteError renders them as a 422 response with a
// per-field detail map.
//
// # Per-route configuration
//
// Limits and content-type policy resolve per request: a Config installed by
// Middleware wins over the process default. Configs are immutable after
// construction and safe for concurrent use.
//
//	uploads := jsonx.Middleware(jsonx.NewConfig(
//		jsonx.WithLimit(10 << 20),
//		jsonx.WithContentType(func(mediatype string, _ map[string]string) bool {
//			return mediatype == "application/vnd.acme.report"
//		}),
//	))
//
//	r.With(uploads).Post("/reports", reportHandler)
//
// # Responses
//
// The JSON carrier doubles as the response direction: its Render method
// serializes the inner value with a 200 status, and maps marshal failures to
// a structured 500 body instead of panicking. Handle and HandleValidated
// adapt typed handlers returning a Response into http.HandlerFunc.
package jsonx
