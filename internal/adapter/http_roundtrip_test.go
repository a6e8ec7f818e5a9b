// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/adapter"
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	vaulthttp "github.com/MKhiriev/go-tenant-vault/internal/handler/http"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/mock"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// TestRoundTrip_SignedSession drives the adapter against the real router
// with body signing enabled.
func TestRoundTrip_SignedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionStore(ctrl)
	login := mock.NewMockLoginService(ctrl)
	vault := mock.NewMockVaultService(ctrl)

	tenantID := int64(1)
	session := func() models.Session {
		return models.Session{
			ID:     "sid",
			User:   models.User{ID: 2, Username: "alice", TenantID: &tenantID},
			Tenant: &models.Tenant{ID: tenantID, Name: "acme"},
			Key:    make([]byte, 32),
		}
	}

	login.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "pw1"}, "").
		Return(models.LoginResponse{Token: "tok", User: "alice", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	sessions.EXPECT().Resolve(gomock.Any(), "tok").DoAndReturn(func(context.Context, string) (models.Session, error) {
		return session(), nil
	}).Times(6)
	vault.EXPECT().AddEntry(gomock.Any(), gomock.Any(), "db_pass", "s3cr3t").Return(nil)
	vault.EXPECT().GetEntry(gomock.Any(), gomock.Any(), "db_pass").Return(models.EntryResponse{Name: "db_pass", Value: "s3cr3t"}, nil)
	vault.EXPECT().GetEntry(gomock.Any(), gomock.Any(), "a%41").Return(models.EntryResponse{Name: "a%41", Value: "v"}, nil)
	vault.EXPECT().DeleteEntry(gomock.Any(), gomock.Any(), "100%").Return(nil)
	vault.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return([]models.EntryResult{{Name: "db_pass", Value: "s3cr3t"}}, nil)
	login.EXPECT().Logout(gomock.Any(), "tok").Return(nil)

	services := &service.Services{SessionManager: sessions, LoginService: login, VaultService: vault}
	cfg := config.StructuredConfig{App: config.App{HashKey: "roundtrip-key"}}
	srv := httptest.NewServer(vaulthttp.NewHandler(services, cfg, logger.Nop()).Init())
	defer srv.Close()

	a, err := adapter.NewHTTPServerAdapter(&config.ClientConfig{
		HTTPAddress:    srv.URL,
		RequestTimeout: 5 * time.Second,
		HashKey:        "roundtrip-key",
	}, logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = a.Login(ctx, models.LoginRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "tok", a.Token())

	require.NoError(t, a.AddEntry(ctx, models.EntryRequest{Name: "db_pass", Value: "s3cr3t"}))

	got, err := a.GetEntry(ctx, "db_pass")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", got.Value)

	got, err = a.GetEntry(ctx, "a%41")
	require.NoError(t, err)
	assert.Equal(t, "a%41", got.Name)

	require.NoError(t, a.DeleteEntry(ctx, "100%"))

	list, err := a.ListEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.EntryResult{{Name: "db_pass", Value: "s3cr3t"}}, list)

	require.NoError(t, a.Logout(ctx))
	assert.Empty(t, a.Token())
}
