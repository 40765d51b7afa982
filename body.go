package jsonx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/httpkit/jsonx/pkg/logger"
)

// chunkSize is the scratch buffer used to pull the body stream.
const chunkSize = 8 << 10 // 8 KB

// previewLimit bounds the body excerpt attached to log records.
const previewLimit = 30 << 10 // 30 KB

// declaredLength parses the Content-Length header. Malformed or negative
// values are treated as absent, mirroring how the header is used only as an
// optimization hint and never trusted as authoritative.
func declaredLength(r *http.Request) (int64, bool) {
	raw := r.Header.Get("Content-Length")
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// readBody drains the request body into memory, enforcing limit on the fly.
// The accumulated buffer never exceeds limit: the overflow check runs before
// a chunk is committed, and the crossing chunk is discarded along with the
// rest of the stream. On success the buffer is handed out without a copy.
//
// The only suspension point is the Read call; the host delivers chunks as
// they arrive on the wire. Read errors other than io.EOF propagate unchanged.
func readBody(ctx context.Context, body io.Reader, limit int64, log *slog.Logger) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)

	for {
		n, err := body.Read(chunk)
		if n > 0 {
			if int64(buf.Len())+int64(n) > limit {
				log.LogAttrs(ctx, slog.LevelError, "request body over limit",
					slog.Int64("limit", limit),
					slog.String("body", preview(buf.Bytes())),
					logger.Component("jsonx"),
				)
				return nil, &OverflowError{Limit: limit}
			}
			buf.Write(chunk[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf.Bytes(), nil
			}
			return nil, err
		}
	}
}

// preview returns a log-safe excerpt of raw body bytes: truncated to
// previewLimit and coerced to valid UTF-8 so arbitrary payloads cannot blow
// up log volume or corrupt log streams.
func preview(b []byte) string {
	if len(b) > previewLimit {
		b = b[:previewLimit]
	}
	return strings.ToValidUTF8(string(b), "�")
}
