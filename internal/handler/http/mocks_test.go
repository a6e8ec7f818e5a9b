// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

type mockSessionStore struct {
	resolveFn func(ctx context.Context, token string) (models.Session, error)
}

func (m *mockSessionStore) Create(context.Context, models.User, *models.Tenant, crypto.Key) (models.Token, error) {
	panic("unexpected Create")
}

func (m *mockSessionStore) Resolve(ctx context.Context, token string) (models.Session, error) {
	return m.resolveFn(ctx, token)
}

func (m *mockSessionStore) Destroy(context.Context, string) error { panic("unexpected Destroy") }
func (m *mockSessionStore) DestroyTenant(int64) int               { panic("unexpected DestroyTenant") }
func (m *mockSessionStore) PurgeExpired(time.Time) int            { panic("unexpected PurgeExpired") }

type mockLoginService struct {
	loginFn  func(ctx context.Context, req models.LoginRequest, currentToken string) (models.LoginResponse, error)
	logoutFn func(ctx context.Context, token string) error
}

func (m *mockLoginService) Login(ctx context.Context, req models.LoginRequest, currentToken string) (models.LoginResponse, error) {
	return m.loginFn(ctx, req, currentToken)
}

func (m *mockLoginService) Logout(ctx context.Context, token string) error {
	return m.logoutFn(ctx, token)
}

type mockVaultService struct {
	addFn    func(ctx context.Context, session models.Session, name, value string) error
	getFn    func(ctx context.Context, session models.Session, name string) (models.EntryResponse, error)
	listFn   func(ctx context.Context, session models.Session) ([]models.EntryResult, error)
	deleteFn func(ctx context.Context, session models.Session, name string) error
}

func (m *mockVaultService) AddEntry(ctx context.Context, session models.Session, name, value string) error {
	return m.addFn(ctx, session, name, value)
}

func (m *mockVaultService) GetEntry(ctx context.Context, session models.Session, name string) (models.EntryResponse, error) {
	return m.getFn(ctx, session, name)
}

func (m *mockVaultService) ListEntries(ctx context.Context, session models.Session) ([]models.EntryResult, error) {
	return m.listFn(ctx, session)
}

func (m *mockVaultService) DeleteEntry(ctx context.Context, session models.Session, name string) error {
	return m.deleteFn(ctx, session, name)
}

type mockTenantService struct {
	createTenantFn     func(ctx context.Context, name string) (models.Tenant, error)
	listTenantsFn      func(ctx context.Context) ([]models.Tenant, error)
	deleteTenantFn     func(ctx context.Context, tenantID int64) error
	createSuperuserFn  func(ctx context.Context, username, password string) (models.User, error)
	createTenantUserFn func(ctx context.Context, tenantID int64, username, password string) (models.User, error)
}

func (m *mockTenantService) CreateTenant(ctx context.Context, name string) (models.Tenant, error) {
	return m.createTenantFn(ctx, name)
}

func (m *mockTenantService) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	return m.listTenantsFn(ctx)
}

func (m *mockTenantService) DeleteTenant(ctx context.Context, tenantID int64) error {
	return m.deleteTenantFn(ctx, tenantID)
}

func (m *mockTenantService) CreateSuperuser(ctx context.Context, username, password string) (models.User, error) {
	return m.createSuperuserFn(ctx, username, password)
}

func (m *mockTenantService) CreateTenantUser(ctx context.Context, tenantID int64, username, password string) (models.User, error) {
	return m.createTenantUserFn(ctx, tenantID, username, password)
}

type mockAppInfoService struct {
	info models.VersionInfo
}

func (m *mockAppInfoService) GetAppInfo(context.Context) models.VersionInfo {
	return m.info
}

// ─────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────

const (
	aliceToken = "alice-token"
	rootToken  = "root-token"
)

var acmeTenant = models.Tenant{ID: 3, Name: "acme"}

// sessionFor returns a fresh session per call: the auth middleware wipes
// the key it hands out.
func sessionFor(token string) (models.Session, error) {
	tenantID := acmeTenant.ID
	switch token {
	case aliceToken:
		tenant := acmeTenant
		return models.Session{
			ID:     "s-alice",
			User:   models.User{ID: 10, TenantID: &tenantID, Username: "alice"},
			Tenant: &tenant,
			Key:    crypto.Key(bytes.Repeat([]byte{7}, crypto.KeySize)),
		}, nil
	case rootToken:
		return models.Session{ID: "s-root", User: models.User{ID: 1, Username: "root", IsSuperuser: true}}, nil
	default:
		return models.Session{}, service.ErrSessionInvalid
	}
}

// newTestServices returns services whose session table knows aliceToken
// and rootToken. Other mocks are left for the test to fill in.
func newTestServices() *service.Services {
	return &service.Services{
		SessionManager: &mockSessionStore{resolveFn: func(_ context.Context, token string) (models.Session, error) {
			return sessionFor(token)
		}},
		LoginService:   &mockLoginService{},
		VaultService:   &mockVaultService{},
		TenantService:  &mockTenantService{},
		AppInfoService: &mockAppInfoService{info: models.VersionInfo{Name: "go-tenant-vault", Version: "test"}},
	}
}

func newTestHandler(services *service.Services) *Handler {
	return NewHandler(services, config.StructuredConfig{}, logger.Nop())
}

// do sends a request through the full router.
func do(t *testing.T, h *Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// envelope decodes an APIResponse, leaving Data as raw JSON.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func newRequest(method, target string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, target, body)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}
