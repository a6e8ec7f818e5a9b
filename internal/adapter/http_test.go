// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

func newTestAdapter(t *testing.T, serverURL, hashKey string) *httpServerAdapter {
	t.Helper()
	cfg := &config.ClientConfig{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second, HashKey: hashKey}

	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, data any, errMsg string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(models.APIResponse{Success: errMsg == "", Data: data, Error: errMsg}))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "with scheme", raw: "https://vault.local/", want: "https://vault.local"},
		{name: "whitespace", raw: "  127.0.0.1:9000 ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(&config.ClientConfig{}, logger.Nop())
	assert.Error(t, err)
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)
		assert.Equal(t, "pw1", req.Password)

		w.Header().Set("Authorization", "Bearer tok-1")
		writeEnvelope(t, w, http.StatusOK, models.LoginResponse{Token: "tok-1", User: "alice"}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw1"})

	require.NoError(t, err)
	assert.Equal(t, "alice", got.User)
	assert.Equal(t, "tok-1", a.Token())
}

func TestLogin_SendsCurrentToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer old", r.Header.Get("Authorization"))
		w.Header().Set("Authorization", "Bearer new")
		writeEnvelope(t, w, http.StatusOK, models.LoginResponse{Token: "new"}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	a.SetToken("old")

	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "new", a.Token())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, nil, app.MsgInvalidCredentials)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "bad"})

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), app.MsgInvalidCredentials)
	assert.Empty(t, a.Token())
}

func TestLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, models.Empty{}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")

	assert.ErrorIs(t, a.Logout(context.Background()), ErrNotLoggedIn)

	a.SetToken("tok")
	require.NoError(t, a.Logout(context.Background()))
	assert.Empty(t, a.Token())
}

func TestAddEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/entries", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.EntryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.EntryRequest{Name: "db_pass", Value: "s3cr3t"}, req)

		writeEnvelope(t, w, http.StatusCreated, models.EntryNameRequest{Name: "db_pass"}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	a.SetToken("tok")

	assert.NoError(t, a.AddEntry(context.Background(), models.EntryRequest{Name: "db_pass", Value: "s3cr3t"}))
}

func TestGetEntry_EscapesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/entries/db%20pass%2Fprod", r.URL.EscapedPath())
		writeEnvelope(t, w, http.StatusOK, models.EntryResponse{Name: "db pass/prod", Value: "v"}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.GetEntry(context.Background(), "db pass/prod")

	require.NoError(t, err)
	assert.Equal(t, models.EntryResponse{Name: "db pass/prod", Value: "v"}, got)
}

func TestGetEntry_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
		kind   app.Kind
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest, kind: app.KindInvalidInput},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized, kind: app.KindUnauthenticated},
		{name: "forbidden", status: http.StatusForbidden, want: ErrForbidden, kind: app.KindPermissionDenied},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound, kind: app.KindNotFound},
		{name: "conflict", status: http.StatusConflict, want: ErrConflict, kind: app.KindDuplicate},
		{name: "internal", status: http.StatusInternalServerError, want: ErrInternalServerError, kind: app.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tt.status, nil, "boom")
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "")
			_, err := a.GetEntry(context.Background(), "x")

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.kind, app.KindOf(err))
			assert.Contains(t, err.Error(), "boom")
		})
	}
}

func TestMapHTTPError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	err := a.DeleteEntry(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502")
	assert.Contains(t, err.Error(), http.StatusText(http.StatusBadGateway))
}

func TestListEntries(t *testing.T) {
	want := []models.EntryResult{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, want, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.ListEntries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListEntries_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, []models.EntryResult{}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.ListEntries(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListEntries_Partial(t *testing.T) {
	results := []models.EntryResult{{Name: "a", Value: "1"}, {Name: "b", Error: app.MsgDecryptionFailed}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusInternalServerError, results, "failed to decrypt 1 entries: b")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.ListEntries(context.Background())

	require.ErrorIs(t, err, ErrPartialList)
	assert.Equal(t, app.KindDecryptionFailed, app.KindOf(err))
	assert.Contains(t, err.Error(), "b")
	assert.Equal(t, results, got)
}

func TestListEntries_InternalErrorWithoutData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusInternalServerError, nil, app.MsgInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.ListEntries(context.Background())

	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Nil(t, got)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, models.VersionInfo{Name: "vault", Version: "1.2.3", Schema: "2.0"}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.VersionInfo{Name: "vault", Version: "1.2.3", Schema: "2.0"}, got)
}

func TestHashing_SignsRequestsAndVerifiesResponses(t *testing.T) {
	utils.InitHasherPool(testHashKey)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, hmacHex(string(body), testHashKey), r.Header.Get(hashHeader))

		payload, err := json.Marshal(models.APIResponse{Success: true, Data: models.Empty{}})
		require.NoError(t, err)
		w.Header().Set(hashHeader, hmacHex(string(payload), testHashKey))
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testHashKey)

	assert.NoError(t, a.AddEntry(context.Background(), models.EntryRequest{Name: "a", Value: "1"}))
}

func TestHashing_RejectsTamperedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(hashHeader, hex.EncodeToString([]byte("not the signature")))
		writeEnvelope(t, w, http.StatusOK, models.VersionInfo{Name: "vault"}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testHashKey)
	_, err := a.Version(context.Background())

	assert.ErrorIs(t, err, ErrIntegrityCheckFailed)
}

func TestHashing_UnsignedResponsePasses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, models.VersionInfo{Name: "vault"}, "")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testHashKey)
	got, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "vault", got.Name)
}

func TestToken_Trimmed(t *testing.T) {
	a := newTestAdapter(t, "localhost:1", "")
	a.SetToken("  tok \n")
	assert.Equal(t, "tok", a.Token())
}

// hmacHex signs data with key independently of the shared hasher pool.
func hmacHex(data, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
