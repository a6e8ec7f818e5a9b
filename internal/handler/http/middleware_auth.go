// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
)

// auth resolves the bearer token of the request into a session.
//
// The session, the raw token and the user id are stored in the request
// context under [utils.SessionCtxKey], [utils.TokenCtxKey] and
// [utils.UserIDCtxKey]. The session's copy of the vault key is wiped once the
// downstream handler returns. Requests without
// a header, with a malformed header or with an expired or unknown session
// are answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrSessionInvalid, err))
			return
		}

		ctx := r.Context()
		session, err := h.services.SessionManager.Resolve(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer session.Wipe()

		ctx = context.WithValue(ctx, utils.SessionCtxKey, &session)
		ctx = context.WithValue(ctx, utils.TokenCtxKey, tokenString)
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, session.User.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tenantOnly admits sessions that hold a tenant vault key.
func (h *Handler) tenantOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			writeError(w, r, service.ErrNoSession)
			return
		}
		if !session.HasVault() {
			writeError(w, r, service.ErrVaultAccessDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// superuserOnly admits superuser sessions.
func (h *Handler) superuserOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			writeError(w, r, service.ErrNoSession)
			return
		}
		if !session.User.IsSuperuser {
			writeError(w, r, service.ErrSuperuserRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
