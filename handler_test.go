package jsonx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/httpkit/jsonx"
)

func TestHandle(t *testing.T) {
	t.Run("decoded body reaches the handler", func(t *testing.T) {
		h := jsonx.Handle(func(r *http.Request, body *jsonx.JSON[todoRequest]) jsonx.Response {
			return jsonx.JSON[todoRequest]{Value: body.Value}
		})

		rec := httptest.NewRecorder()
		h(rec, newJSONRequest(t, `{"title":"x"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"title":"x"}`, rec.Body.String())
	})

	t.Run("extraction failure short-circuits to WriteError", func(t *testing.T) {
		called := false
		h := jsonx.Handle(func(r *http.Request, body *jsonx.JSON[todoRequest]) jsonx.Response {
			called = true
			return nil
		})

		req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"x"}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("nil response maps to 500", func(t *testing.T) {
		h := jsonx.Handle(func(r *http.Request, body *jsonx.JSON[todoRequest]) jsonx.Response {
			return nil
		})

		rec := httptest.NewRecorder()
		h(rec, newJSONRequest(t, `{"title":"x"}`))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleValidated(t *testing.T) {
	t.Run("ruleset applied before the handler runs", func(t *testing.T) {
		called := false
		h := jsonx.HandleValidated(func(r *http.Request, body *jsonx.JSON[todoRequest]) jsonx.Response {
			called = true
			return jsonx.JSON[todoRequest]{Value: body.Value}
		})

		rec := httptest.NewRecorder()
		h(rec, newJSONRequest(t, `{"title":""}`))

		assert.False(t, called)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Error struct {
				Details map[string][]string `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error.Details, "title")
	})

	t.Run("conforming body passes through", func(t *testing.T) {
		h := jsonx.HandleValidated(func(r *http.Request, body *jsonx.JSON[todoRequest]) jsonx.Response {
			return jsonx.JSON[todoRequest]{Value: body.Value}
		})

		rec := httptest.NewRecorder()
		h(rec, newJSONRequest(t, `{"title":"short","priority":1}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
