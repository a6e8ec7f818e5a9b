// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_IsTenantUser(t *testing.T) {
	tenantID := int64(7)

	assert.True(t, User{TenantID: &tenantID}.IsTenantUser())
	assert.False(t, User{IsSuperuser: true}.IsTenantUser())
	assert.False(t, User{IsSuperuser: true, TenantID: &tenantID}.IsTenantUser())
	assert.False(t, User{}.IsTenantUser())
}

func TestSession_HasVaultAndWipe(t *testing.T) {
	tenantID := int64(1)
	s := Session{
		User:   User{TenantID: &tenantID},
		Tenant: &Tenant{ID: tenantID, Name: "acme"},
		Key:    []byte{1, 2, 3},
	}
	require.True(t, s.HasVault())

	key := s.Key
	s.Wipe()

	assert.False(t, s.HasVault())
	assert.Equal(t, []byte{0, 0, 0}, []byte(key))
}

func TestSession_SuperuserHasNoVault(t *testing.T) {
	s := Session{User: User{IsSuperuser: true}}
	assert.False(t, s.HasVault())
}

func TestToken_GetUserIDAndExpiry(t *testing.T) {
	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tok := Token{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(exp),
	}}

	id, err := tok.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.True(t, exp.Equal(tok.Expiry()))

	bad := Token{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}
	_, err = bad.GetUserID()
	assert.Error(t, err)
	assert.True(t, bad.Expiry().IsZero())
}

func TestAppBuildInfo_Defaults(t *testing.T) {
	info := NewAppBuildInfo("1.0.0", "", "")

	assert.Equal(t, "1.0.0", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "N/A", info.BuildCommit())
	assert.Contains(t, info.String(), "Build version: 1.0.0")
}

func TestEntryResult_Failed(t *testing.T) {
	assert.False(t, EntryResult{Name: "a", Value: "v"}.Failed())
	assert.True(t, EntryResult{Name: "a", Error: "decryption failed"}.Failed())
}
