// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/crypto"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/awnumar/memguard"
)

// sessionRecord is one row of the session table. It is never mutated after
// insertion.
type sessionRecord struct {
	user   models.User
	tenant *models.Tenant

	// key is sealed in a memguard enclave; nil for superuser sessions.
	key *memguard.Enclave

	createdAt time.Time
	expiresAt time.Time
}

// SessionManager is the process-local session table keyed by session id.
//
// Clients hold a signed token whose jti claim names the row. The mutex only
// guards map access; key derivation always happens before Create is called.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord

	ids          *utils.UUIDGenerator
	tokenSignKey string
	tokenIssuer  string
	ttl          time.Duration
	now          func() time.Time

	logger *logger.Logger
}

// NewSessionManager constructs an empty session table using the token
// parameters from cfg.
func NewSessionManager(cfg config.App, logger *logger.Logger) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*sessionRecord),
		ids:          utils.NewUUIDGenerator(),
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		ttl:          cfg.SessionTTL,
		now:          time.Now,
		logger:       logger,
	}
}

// Create stores a new session for user and returns its signed token. tenant
// and key are nil for a superuser. The key is copied into a memguard enclave;
// the caller keeps ownership of key.
func (m *SessionManager) Create(ctx context.Context, user models.User, tenant *models.Tenant, key crypto.Key) (models.Token, error) {
	sessionID := m.ids.Generate()

	token, err := utils.GenerateJWTToken(m.tokenIssuer, user.ID, sessionID, m.ttl, m.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreation, err)
	}

	record := &sessionRecord{
		user:      user,
		createdAt: m.now(),
		expiresAt: token.Expiry(),
	}
	if tenant != nil {
		t := *tenant
		record.tenant = &t
	}
	if len(key) > 0 {
		// NewEnclave wipes its argument
		record.key = memguard.NewEnclave(key.Clone())
	}

	m.mu.Lock()
	m.sessions[sessionID] = record
	m.mu.Unlock()

	logger.FromContext(ctx).Info().
		Str("session_id", sessionID).
		Int64("user_id", user.ID).
		Bool("vault", record.key != nil).
		Msg("session created")

	return token, nil
}

// Resolve validates tokenString and returns a snapshot of its session with a
// fresh copy of the tenant key. Unknown, mismatched or expired sessions give
// ErrSessionInvalid; an expired row is removed on the way.
func (m *SessionManager) Resolve(ctx context.Context, tokenString string) (models.Session, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, m.tokenSignKey, m.tokenIssuer)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	m.mu.RLock()
	record, ok := m.sessions[token.SessionID]
	m.mu.RUnlock()

	if !ok || record.user.ID != token.UserID {
		return models.Session{}, ErrSessionInvalid
	}

	if !m.now().Before(record.expiresAt) {
		m.remove(token.SessionID)
		return models.Session{}, ErrSessionInvalid
	}

	session := models.Session{
		ID:        token.SessionID,
		User:      record.user,
		ExpiresAt: record.expiresAt,
	}
	if record.tenant != nil {
		t := *record.tenant
		session.Tenant = &t
	}

	if record.key != nil {
		buf, err := record.key.Open()
		if err != nil {
			logger.FromContext(ctx).Failure(err).Str("session_id", token.SessionID).Msg("failed to open session key")
			return models.Session{}, fmt.Errorf("%w: %w", ErrSessionKeyLost, err)
		}
		session.Key = crypto.Key(bytes.Clone(buf.Bytes()))
		buf.Destroy()
	}

	return session, nil
}

// Destroy removes the session named by tokenString.
func (m *SessionManager) Destroy(ctx context.Context, tokenString string) error {
	token, err := utils.ValidateAndParseJWTToken(tokenString, m.tokenSignKey, m.tokenIssuer)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}

	if !m.remove(token.SessionID) {
		return ErrSessionInvalid
	}

	logger.FromContext(ctx).Info().Str("session_id", token.SessionID).Msg("session destroyed")

	return nil
}

// DestroyTenant removes every session bound to tenantID and reports how many
// were dropped.
func (m *SessionManager) DestroyTenant(tenantID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, record := range m.sessions {
		if record.tenant != nil && record.tenant.ID == tenantID {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// PurgeExpired removes sessions whose expiry is not after now.
func (m *SessionManager) PurgeExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, record := range m.sessions {
		if !now.Before(record.expiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Len returns the number of sessions in the table, expired ones included.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func (m *SessionManager) remove(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return false
	}
	delete(m.sessions, sessionID)

	return true
}
