// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// login opens a session. A bearer token presented with the request names
// the session to replace once the login succeeds.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	var currentToken string
	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			currentToken = token
		}
	}

	resp, err := h.services.LoginService.Login(r.Context(), req, currentToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("username", resp.User).Bool("superuser", resp.IsSuperuser).Msg("user logged in")

	w.Header().Set("Authorization", "Bearer "+resp.Token)
	writeData(w, r, resp, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNoSession)
		return
	}

	if err := h.services.LoginService.Logout(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, models.Empty{}, http.StatusOK)
}
