// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the remote client vaultctl uses to talk to the
// vault HTTP API.
//
// The primary abstraction is [ServerAdapter], which decouples the commands
// from the protocol. Non-2xx responses are mapped by mapHTTPError to the
// sentinels in errors.go, which carry an [app.Kind] so that callers can use
// [errors.Is] and [app.KindOf] the same way they do for local errors.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-tenant-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the vault
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Version returns the name and version of the server.
	Version(ctx context.Context) (models.VersionInfo, error)

	// Login opens a session. On success the returned token is stored via
	// SetToken. A token already held by the adapter is sent along so the
	// server replaces that session.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Logout closes the session of the stored token and forgets it.
	Logout(ctx context.Context) error

	// AddEntry stores or replaces one entry of the session's tenant.
	AddEntry(ctx context.Context, req models.EntryRequest) error

	// GetEntry returns the decrypted value of the named entry.
	GetEntry(ctx context.Context, name string) (models.EntryResponse, error)

	// ListEntries returns every entry of the tenant. When some entries could
	// not be decrypted the full result is returned together with an error
	// matching [ErrPartialList].
	ListEntries(ctx context.Context) ([]models.EntryResult, error)

	// DeleteEntry removes the named entry.
	DeleteEntry(ctx context.Context, name string) error
}
