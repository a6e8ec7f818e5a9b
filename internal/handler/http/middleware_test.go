// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// withTraceID
// ─────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		requestID     string
		wantSameID    bool
		wantGenerated bool
	}{
		{name: "reuses caller id", requestID: "my-custom-trace-id", wantSameID: true},
		{name: "generates when absent", requestID: "", wantGenerated: true},
		{name: "replaces oversized id", requestID: strings.Repeat("x", maxTraceIDLen+1), wantGenerated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.requestID != "" {
				req.Header.Set(traceIDHeader, tt.requestID)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)
			if tt.wantSameID {
				assert.Equal(t, tt.requestID, got)
			}
			if tt.wantGenerated {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

// ─────────────────────────────────────────────
// withLogging
// ─────────────────────────────────────────────

func TestWithLogging_WritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	handler := h.withTraceID(h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/entries?x=1", strings.NewReader(`{"value":"secret123"}`))
	req.Header.Set(traceIDHeader, "trace-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	assert.Contains(t, line, `"uri":"/api/entries?x=1"`)
	assert.Contains(t, line, `"method":"POST"`)
	assert.Contains(t, line, `"status":418`)
	assert.Contains(t, line, `"size":15`)
	assert.Contains(t, line, `"trace_id":"trace-1"`)
	assert.NotContains(t, line, "secret123")
}

func TestWithLogging_ImplicitStatus(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	handler := h.withTraceID(h.withLogging(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), `"status":200`)
}

// ─────────────────────────────────────────────
// responseWriter
// ─────────────────────────────────────────────

func TestResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte("abc"))
	_, _ = w.Write([]byte("de"))

	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 5, w.size)
	assert.Equal(t, rr, w.Unwrap())
}

// ─────────────────────────────────────────────
// withGZip
// ─────────────────────────────────────────────

func gzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(b)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func echoHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "echo: %s", body)
	})
}

func TestWithGZip(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		compressBody   bool
		wantGzipped    bool
	}{
		{name: "plain", wantGzipped: false},
		{name: "compressed response", acceptEncoding: "deflate, gzip;q=1.0", wantGzipped: true},
		{name: "compressed request", compressBody: true, wantGzipped: false},
		{name: "both", acceptEncoding: "gzip", compressBody: true, wantGzipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte("payload")
			if tt.compressBody {
				body = gzipBytes(t, body)
			}
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
			if tt.compressBody {
				req.Header.Set("Content-Encoding", "gzip")
			}
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}

			rr := httptest.NewRecorder()
			withGZip(echoHandler()).ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			got := rr.Body.Bytes()
			if tt.wantGzipped {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				zr, err := gzip.NewReader(bytes.NewReader(got))
				require.NoError(t, err)
				got, err = io.ReadAll(zr)
				require.NoError(t, err)
			} else {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
			}
			assert.Equal(t, "echo: payload", string(got))
		})
	}
}

func TestWithGZip_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")

	rr := httptest.NewRecorder()
	withGZip(echoHandler()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestWithGZip_ImplicitStatusIsCompressed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := httptest.NewRecorder()
	withGZip(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("no header written"))
	})).ServeHTTP(rr, req)

	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestWithGZip_ConcurrentRequests(t *testing.T) {
	handler := withGZip(echoHandler())

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payload := fmt.Sprintf("request-%d", i)
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(gzipBytes(t, []byte(payload))))
			req.Header.Set("Content-Encoding", "gzip")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			assert.Equal(t, "echo: "+payload, rr.Body.String())
		}()
	}
	wg.Wait()
}

// ─────────────────────────────────────────────
// withHashing
// ─────────────────────────────────────────────

const testHashKey = "test-hash-key"

func newHashingHandler() *Handler {
	return NewHandler(newTestServices(), config.StructuredConfig{App: config.App{HashKey: testHashKey}}, logger.Nop())
}

func TestWithHashing_Request(t *testing.T) {
	body := `{"name":"db_pass"}`
	valid := hmacHex(body, testHashKey)

	tests := []struct {
		name       string
		hash       string
		wantStatus int
		wantNext   bool
	}{
		{name: "valid hash", hash: valid, wantStatus: http.StatusOK, wantNext: true},
		{name: "no hash header", hash: "", wantStatus: http.StatusOK, wantNext: true},
		{name: "wrong hash", hash: hmacHex(body, "other-key"), wantStatus: http.StatusBadRequest},
		{name: "garbage hash", hash: "zz", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHashingHandler()
			var nextBody string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, _ := io.ReadAll(r.Body)
				nextBody = string(b)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			if tt.hash != "" {
				req.Header.Set(HashHeader, tt.hash)
			}
			rr := httptest.NewRecorder()
			h.withHashing(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantNext {
				assert.Equal(t, body, nextBody, "body must be restored for the next handler")
			} else {
				assert.Empty(t, nextBody)
				assert.Equal(t, ErrIntegrityCheckFailed.Error(), decodeEnvelope(t, rr).Error)
			}
		})
	}
}

func TestWithHashing_SignsResponse(t *testing.T) {
	rr := do(t, newHashingHandler(), http.MethodGet, "/api/version", "", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	want := hex.EncodeToString(utils.Hash(rr.Body.Bytes()))
	assert.Equal(t, want, rr.Header().Get(HashHeader))
	assert.Equal(t, hmacHex(rr.Body.String(), testHashKey), want)
}

func TestWithHashing_KeepsErrorStatus(t *testing.T) {
	rr := do(t, newHashingHandler(), http.MethodGet, "/api/entries", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(HashHeader))
}

// ─────────────────────────────────────────────
// statusFromError
// ─────────────────────────────────────────────

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: ErrInvalidJSON, want: http.StatusBadRequest},
		{name: "credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "no session", err: service.ErrSessionInvalid, want: http.StatusUnauthorized},
		{name: "superuser vault access", err: service.ErrVaultAccessDenied, want: http.StatusForbidden},
		{name: "missing entry", err: fmt.Errorf("error loading entry: %w", store.ErrEntryNotFound), want: http.StatusNotFound},
		{name: "taken username", err: store.ErrUsernameTaken, want: http.StatusConflict},
		{name: "decryption", err: app.ErrDecryptionFailed, want: http.StatusInternalServerError},
		{name: "key derivation", err: app.ErrKeyDerivation, want: http.StatusInternalServerError},
		{name: "storage", err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{name: "untyped", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

// hmacHex signs data with key independently of the shared hasher pool.
func hmacHex(data, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
