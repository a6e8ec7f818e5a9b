// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// APIResponse is the envelope wrapping every HTTP API result.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoginRequest opens a session.
//
// VaultPassword is the tenant's shared vault password. When it is empty the
// login password doubles as the vault password. TenantID, when present, must
// match the user's tenant.
type LoginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	VaultPassword string `json:"vault_password,omitempty"`
	TenantID      *int64 `json:"tenant_id,omitempty"`
}

// LoginResponse describes the session that was opened.
type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        string    `json:"user"`
	Tenant      *string   `json:"tenant,omitempty"`
	IsSuperuser bool      `json:"is_superuser"`
}

// EntryRequest adds or replaces an entry.
type EntryRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EntryNameRequest addresses a single entry by name.
type EntryNameRequest struct {
	Name string `json:"name"`
}

// EntryResponse carries one decrypted entry.
type EntryResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EntryList is the gRPC result of listing a vault. Failed names the
// entries whose result carries an error instead of a value.
type EntryList struct {
	Entries []EntryResult `json:"entries"`
	Failed  []string      `json:"failed,omitempty"`
}

// CreateTenantRequest creates a tenant.
type CreateTenantRequest struct {
	Name string `json:"name"`
}

// CreateUserRequest creates a superuser or a tenant user.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// VersionInfo describes the running server.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Schema  string `json:"schema,omitempty"`
}

// Empty is the message used by calls that carry no payload.
type Empty struct{}
