// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account that can open a session.
//
// A superuser has no tenant and no vault access; it exists only to administer
// tenants. A tenant user belongs to exactly one tenant.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// TenantID is nil for superusers.
	TenantID *int64 `json:"tenant_id,omitempty"`

	// Username is globally unique.
	Username string `json:"username"`

	// PasswordHash is the PHC-encoded Argon2id hash of the login password.
	// It embeds its own random salt and cost parameters and never leaves the
	// server.
	PasswordHash string `json:"-"`

	// IsSuperuser marks tenant administrators.
	IsSuperuser bool `json:"is_superuser"`

	// CreatedAt is the creation timestamp in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with User.
func (u User) TableName() string {
	return "users"
}

// IsTenantUser reports whether u may open a tenant vault.
func (u User) IsTenantUser() bool {
	return !u.IsSuperuser && u.TenantID != nil
}
