package httpx

import (
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jobmarket-api/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCompression(t *testing.T) {
	payload := `{"items":"` + strings.Repeat("candidate ", 500) + `"}`
	jsonHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, payload)
	})

	tests := []struct {
		name           string
		method         string
		acceptEncoding string
		expectGzip     bool
	}{
		{name: "client accepts gzip", method: http.MethodGet, acceptEncoding: "gzip, deflate", expectGzip: true},
		{name: "client does not accept gzip", method: http.MethodGet, acceptEncoding: "deflate"},
		{name: "no accept-encoding header", method: http.MethodGet},
		{name: "gzip disabled by q=0", method: http.MethodGet, acceptEncoding: "gzip;q=0, br"},
		{name: "head request", method: http.MethodHead, acceptEncoding: "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Compression(CompressionConfig{Level: 6, Logger: discardLogger()})(jsonHandler)
			req := httptest.NewRequest(tt.method, "/api/jobs", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if !tt.expectGzip {
				assert.Empty(t, rec.Header().Get("Content-Encoding"))
				return
			}
			require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Contains(t, rec.Header().Values("Vary"), "Accept-Encoding")

			zr, err := gzip.NewReader(rec.Body)
			require.NoError(t, err)
			body, err := io.ReadAll(zr)
			require.NoError(t, err)
			assert.Equal(t, payload, string(body))
		})
	}
}

func TestCompression_SkipsNoContentAndBinary(t *testing.T) {
	h := Compression(CompressionConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))

	for _, path := range []string{"/empty", "/img"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Content-Encoding"), path)
	}
}

func TestAcceptsGzip(t *testing.T) {
	assert.True(t, acceptsGzip("gzip"))
	assert.True(t, acceptsGzip("br, GZIP;q=0.8"))
	assert.False(t, acceptsGzip(""))
	assert.False(t, acceptsGzip("x-gzip-like"))
	assert.False(t, acceptsGzip("gzip; q=0"))
}

func TestRecover(t *testing.T) {
	h := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	requireErrorBody(t, rec, http.StatusInternalServerError, ErrCodeTransactionFailed)
}

func TestActor(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = service.ActorFromContext(r.Context())
	})

	t.Run("default header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Actor-ID", "  staff-3 ")
		Actor("")(inner).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "staff-3", seen)
	})

	t.Run("custom header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-User", "ops")
		req.Header.Set("X-Actor-ID", "ignored")
		Actor("X-Forwarded-User")(inner).ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "ops", seen)
	})

	t.Run("absent header", func(t *testing.T) {
		Actor("")(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, seen)
	})
}
