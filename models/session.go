// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
)

// Session is a resolved, authenticated identity.
//
// Sessions are ephemeral: they live in the server's session table until
// logout or expiry and are never persisted. A Session value handed out by the
// session manager holds a private copy of the key; the holder wipes it with
// [Session.Wipe] once the request is done.
type Session struct {
	// ID is the session identifier, also carried as the token's jti claim.
	ID string

	// User is the authenticated account.
	User User

	// Tenant is nil for superuser sessions.
	Tenant *Tenant

	// Key is the derived tenant key, nil for superuser sessions.
	Key crypto.Key

	// ExpiresAt is the moment the session stops resolving.
	ExpiresAt time.Time
}

// HasVault reports whether the session can run vault operations.
func (s Session) HasVault() bool {
	return s.User.IsTenantUser() && s.Tenant != nil && len(s.Key) > 0
}

// Wipe zeroes the session's copy of the key.
func (s *Session) Wipe() {
	s.Key.Zero()
	s.Key = nil
}
