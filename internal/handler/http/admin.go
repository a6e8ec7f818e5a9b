// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/go-chi/chi/v5"
)

func tenantIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.Join(ErrInvalidTenantIDParam, err)
	}
	if id <= 0 {
		return 0, ErrInvalidTenantIDParam
	}
	return id, nil
}

func (h *Handler) listTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.services.TenantService.ListTenants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if tenants == nil {
		tenants = []models.Tenant{}
	}
	writeData(w, r, tenants, http.StatusOK)
}

func (h *Handler) createTenant(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	tenant, err := h.services.TenantService.CreateTenant(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Info().Int64("actor_id", actorID).Int64("tenant_id", tenant.ID).Msg("tenant created")

	writeData(w, r, tenant, http.StatusCreated)
}

func (h *Handler) deleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.TenantService.DeleteTenant(r.Context(), tenantID); err != nil {
		writeError(w, r, err)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Info().Int64("actor_id", actorID).Int64("tenant_id", tenantID).Msg("tenant deleted")

	writeData(w, r, models.Empty{}, http.StatusOK)
}

func (h *Handler) createTenantUser(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.TenantService.CreateTenantUser(r.Context(), tenantID, req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Info().Int64("actor_id", actorID).Int64("tenant_id", tenantID).Int64("user_id", user.ID).Msg("tenant user created")

	writeData(w, r, user, http.StatusCreated)
}

func (h *Handler) createSuperuser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.TenantService.CreateSuperuser(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Info().Int64("actor_id", actorID).Int64("user_id", user.ID).Msg("superuser created")

	writeData(w, r, user, http.StatusCreated)
}
