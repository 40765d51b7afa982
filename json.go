package jsonx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// JSON is the transparent carrier for a decoded request body. It exposes the
// inner value directly and passes formatting, serialization and structured
// logging through to it.
type JSON[T any] struct {
	Value T
}

// String formats the inner value.
func (j JSON[T]) String() string {
	return fmt.Sprintf("%v", j.Value)
}

// MarshalJSON serializes the inner value.
func (j JSON[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Value)
}

// UnmarshalJSON deserializes into the inner value.
func (j *JSON[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &j.Value)
}

// LogValue exposes the inner value to slog.
func (j JSON[T]) LogValue() slog.Value {
	return slog.AnyValue(j.Value)
}

// Render writes the inner value as a 200 response with an application/json
// content type. A marshal failure never panics: it is mapped to a 500 error
// body through the same structured error shape the decode path uses.
// The returned error reports only failures writing to the client.
func (j JSON[T]) Render(w http.ResponseWriter, r *http.Request) error {
	body, err := json.Marshal(j.Value)
	if err != nil {
		WriteError(w, r, &SerializeError{Err: err})
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}
