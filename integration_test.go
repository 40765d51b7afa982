package jsonx_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/httpkit/jsonx"
	"github.com/httpkit/jsonx/pkg/logger"
	"github.com/httpkit/jsonx/pkg/requestid"
)

func TestRouterIntegration(t *testing.T) {
	tight := jsonx.NewConfig(jsonx.WithLimit(16), jsonx.WithLogger(silentLogger()))
	lenient := jsonx.NewConfig(jsonx.WithContentTypeRequired(false))

	echo := jsonx.Handle(func(r *http.Request, body *jsonx.JSON[todoRequest]) jsonx.Response {
		return jsonx.JSON[todoRequest]{Value: body.Value}
	})

	r := chi.NewRouter()
	r.With(jsonx.Middleware(tight)).Post("/tight", echo)
	r.With(jsonx.Middleware(lenient)).Post("/lenient", echo)
	r.Post("/default", echo)

	t.Run("per-route limit enforced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tight", bytes.NewBufferString(`{"title":"definitely more than sixteen bytes"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("lenient route accepts missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/lenient", bytes.NewBufferString(`{"title":"x"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("default route keeps process defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/default", bytes.NewBufferString(`{"title":"x"}`))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestDecodeLogging(t *testing.T) {
	t.Run("rejected body logged with request id and bounded preview", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelDebug),
			logger.WithContextExtractors(requestid.LoggerExtractor()),
		)
		cfg := jsonx.NewConfig(jsonx.WithLogger(log))

		var decodeErr error
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, decodeErr = jsonx.Decode[todoRequest](r)
		})
		h := requestid.Middleware(jsonx.Middleware(cfg)(inner))

		req := httptest.NewRequest(http.MethodPost, "/todos", bytes.NewBufferString(`{"title":`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(requestid.Header, "req-123")
		h.ServeHTTP(httptest.NewRecorder(), req)

		require.Error(t, decodeErr)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "ERROR", record["level"])
		assert.Equal(t, "req-123", record["request_id"])
		assert.Equal(t, `{"title":`, record["body"])
		assert.Equal(t, "jsonx", record["component"])
	})

	t.Run("successful decode logged at debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))
		cfg := jsonx.NewConfig(jsonx.WithLogger(log))

		req := httptest.NewRequest(http.MethodPost, "/todos", bytes.NewBufferString(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(jsonx.WithConfig(req.Context(), cfg))

		_, err := jsonx.Decode[todoRequest](req)
		require.NoError(t, err)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "DEBUG", record["level"])
		assert.Equal(t, `{"title":"x"}`, record["body"])
	})
}
