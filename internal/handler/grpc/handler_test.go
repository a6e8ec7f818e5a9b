// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/mock"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/store"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const (
	aliceToken = "alice-token"
	rootToken  = "root-token"
)

type fixture struct {
	client   *VaultClient
	sessions *mock.MockSessionStore
	login    *mock.MockLoginService
	vault    *mock.MockVaultService
	appInfo  *mock.MockAppInfoService
}

func aliceSession() models.Session {
	tenantID := int64(3)
	return models.Session{
		ID:     "s-alice",
		User:   models.User{ID: 10, TenantID: &tenantID, Username: "alice"},
		Tenant: &models.Tenant{ID: tenantID, Name: "acme"},
		Key:    crypto.Key(bytes.Repeat([]byte{7}, crypto.KeySize)),
	}
}

func rootSession() models.Session {
	return models.Session{ID: "s-root", User: models.User{ID: 1, Username: "root", IsSuperuser: true}}
}

// newFixture serves the vault over an in-memory listener.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		sessions: mock.NewMockSessionStore(ctrl),
		login:    mock.NewMockLoginService(ctrl),
		vault:    mock.NewMockVaultService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		SessionManager: f.sessions,
		LoginService:   f.login,
		VaultService:   f.vault,
		AppInfoService: f.appInfo,
	}

	listener := bufconn.Listen(1 << 20)
	server := NewHandler(services, logger.Nop()).Init()
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f.client = NewVaultClient(conn)
	return f
}

func withToken(t *testing.T, token string) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return metadata.AppendToOutgoingContext(ctx, authorizationKey, "Bearer "+token)
}

func (f *fixture) expectSession(token string, session models.Session) {
	f.sessions.EXPECT().Resolve(gomock.Any(), token).Return(session, nil)
}

func TestVersion_IsPublic(t *testing.T) {
	f := newFixture(t)
	f.appInfo.EXPECT().GetAppInfo(gomock.Any()).Return(models.VersionInfo{Name: "go-tenant-vault", Version: "1.2.3", Schema: "2.0"})

	var header metadata.MD
	info, err := f.client.Version(context.Background(), &models.Empty{}, grpc.Header(&header))

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "2.0", info.Schema)
	assert.NotEmpty(t, header.Get(traceIDKey))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	tenant := "acme"
	req := models.LoginRequest{Username: "alice", Password: "pw1", VaultPassword: "shared"}

	f.login.EXPECT().Login(gomock.Any(), req, "").
		Return(models.LoginResponse{Token: "new-token", User: "alice", Tenant: &tenant}, nil)

	resp, err := f.client.Login(context.Background(), &req)

	require.NoError(t, err)
	assert.Equal(t, "new-token", resp.Token)
	assert.Equal(t, "acme", *resp.Tenant)
}

func TestLogin_ReplacesPresentedSession(t *testing.T) {
	f := newFixture(t)
	req := models.LoginRequest{Username: "root", Password: "pw"}

	f.login.EXPECT().Login(gomock.Any(), req, "old-token").Return(models.LoginResponse{Token: "new-token"}, nil)

	_, err := f.client.Login(withToken(t, "old-token"), &req)
	require.NoError(t, err)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)

	f.login.EXPECT().Login(gomock.Any(), gomock.Any(), "").Return(models.LoginResponse{}, service.ErrInvalidCredentials)

	_, err := f.client.Login(context.Background(), &models.LoginRequest{Username: "alice", Password: "bad"})

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, app.MsgInvalidCredentials, st.Message())
}

func TestSessionRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.ListEntries(context.Background(), &models.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	f.sessions.EXPECT().Resolve(gomock.Any(), "stale").Return(models.Session{}, service.ErrSessionInvalid)
	_, err = f.client.ListEntries(withToken(t, "stale"), &models.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.AppendToOutgoingContext(context.Background(), authorizationKey, "Token abc")
	_, err = f.client.Logout(ctx, &models.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestEntries(t *testing.T) {
	f := newFixture(t)

	f.expectSession(aliceToken, aliceSession())
	f.vault.EXPECT().AddEntry(gomock.Any(), gomock.Any(), "db_pass", "secret123").
		DoAndReturn(func(_ context.Context, s models.Session, _, _ string) error {
			assert.True(t, s.HasVault())
			return nil
		})
	_, err := f.client.AddEntry(withToken(t, aliceToken), &models.EntryRequest{Name: "db_pass", Value: "secret123"})
	require.NoError(t, err)

	f.expectSession(aliceToken, aliceSession())
	f.vault.EXPECT().GetEntry(gomock.Any(), gomock.Any(), "db_pass").
		Return(models.EntryResponse{Name: "db_pass", Value: "secret123"}, nil)
	entry, err := f.client.GetEntry(withToken(t, aliceToken), &models.EntryNameRequest{Name: "db_pass"})
	require.NoError(t, err)
	assert.Equal(t, "secret123", entry.Value)

	f.expectSession(aliceToken, aliceSession())
	f.vault.EXPECT().DeleteEntry(gomock.Any(), gomock.Any(), "db_pass").Return(nil)
	_, err = f.client.DeleteEntry(withToken(t, aliceToken), &models.EntryNameRequest{Name: "db_pass"})
	require.NoError(t, err)

	f.expectSession(aliceToken, aliceSession())
	f.vault.EXPECT().GetEntry(gomock.Any(), gomock.Any(), "db_pass").Return(models.EntryResponse{}, store.ErrEntryNotFound)
	_, err = f.client.GetEntry(withToken(t, aliceToken), &models.EntryNameRequest{Name: "db_pass"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListEntries_Partial(t *testing.T) {
	f := newFixture(t)

	f.expectSession(aliceToken, aliceSession())
	f.vault.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return([]models.EntryResult{
		{Name: "a", Value: "1"},
		{Name: "b", Error: app.MsgDecryptionFailed},
	}, &service.PartialListError{Failed: []string{"b"}})

	list, err := f.client.ListEntries(withToken(t, aliceToken), &models.Empty{})

	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, list.Failed)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, "1", list.Entries[0].Value)
}

func TestSuperuserVaultAccess(t *testing.T) {
	f := newFixture(t)

	f.expectSession(rootToken, rootSession())
	f.vault.EXPECT().AddEntry(gomock.Any(), gomock.Any(), "x", "y").Return(service.ErrVaultAccessDenied)

	_, err := f.client.AddEntry(withToken(t, rootToken), &models.EntryRequest{Name: "x", Value: "y"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestLogout(t *testing.T) {
	f := newFixture(t)

	f.expectSession(rootToken, rootSession())
	f.login.EXPECT().Logout(gomock.Any(), rootToken).Return(nil)

	_, err := f.client.Logout(withToken(t, rootToken), &models.Empty{})
	require.NoError(t, err)
}

func TestRecovery(t *testing.T) {
	f := newFixture(t)

	f.expectSession(aliceToken, aliceSession())
	f.vault.EXPECT().ListEntries(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, models.Session) ([]models.EntryResult, error) { panic("boom") })

	_, err := f.client.ListEntries(withToken(t, aliceToken), &models.Empty{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestCodeFromError(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{err: app.ErrInvalidInput, want: codes.InvalidArgument},
		{err: app.ErrInvalidCredentials, want: codes.Unauthenticated},
		{err: errMissingAuthorization, want: codes.Unauthenticated},
		{err: service.ErrSuperuserRequired, want: codes.PermissionDenied},
		{err: store.ErrTenantNotFound, want: codes.NotFound},
		{err: store.ErrTenantAlreadyExists, want: codes.AlreadyExists},
		{err: app.ErrDecryptionFailed, want: codes.Internal},
		{err: store.ErrExecutingQuery, want: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, codeFromError(tt.err))
		})
	}
}

func TestToStatus_KeepsExistingStatus(t *testing.T) {
	st := status.Error(codes.DeadlineExceeded, "slow")
	assert.Equal(t, st, toStatus(st))
	assert.NoError(t, toStatus(nil))
	assert.Equal(t, app.MsgInternalServerError, status.Convert(toStatus(store.ErrScanningRow)).Message())
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	raw, err := c.Marshal(&models.EntryRequest{Name: "a", Value: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","value":"b"}`, string(raw))

	var out models.EntryRequest
	require.NoError(t, c.Unmarshal(raw, &out))
	assert.Equal(t, "b", out.Value)
	assert.Equal(t, CodecName, c.Name())
}
