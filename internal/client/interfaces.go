// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-tenant-vault/internal/adapter"
	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
)

// Client defines the lifecycle contract for runnable client applications.
type Client interface {
	// Execute runs the command named by args and blocks until it is done.
	Execute(ctx context.Context, args []string) error
}

// Backend is direct access to the vault store used by the administrative
// commands.
type Backend interface {
	// Initialize creates the schema. An existing schema is dropped only when
	// force is set.
	Initialize(ctx context.Context, force bool) error

	// Tenants returns the tenant administration service, applying pending
	// migrations first.
	Tenants(ctx context.Context) (service.TenantService, error)

	// Close releases the connection and stops background work.
	Close() error
}

// BackendOpener opens a [Backend] for the configured database.
type BackendOpener func(ctx context.Context, cfg config.DB, logger *logger.Logger) (Backend, error)

// AdapterFactory creates the remote adapter used by the entry commands.
type AdapterFactory func(cfg *config.ClientConfig, logger *logger.Logger) (adapter.ServerAdapter, error)

// Prompter reads secrets from the user.
type Prompter interface {
	// Secret shows prompt and returns the next secret without echo.
	Secret(prompt string) (string, error)
}
