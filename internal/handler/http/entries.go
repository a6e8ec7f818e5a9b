// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/go-chi/chi/v5"
)

// sessionOf returns the session the auth middleware resolved.
func sessionOf(r *http.Request) (models.Session, error) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		return models.Session{}, service.ErrNoSession
	}
	return *session, nil
}

// entryNameParam returns the {name} path segment decoded once.
// withEscapedRoutePath guarantees chi hands it over still escaped.
func entryNameParam(r *http.Request) (string, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return "", errors.Join(ErrInvalidJSON, err)
	}
	return name, nil
}

func (h *Handler) addEntry(w http.ResponseWriter, r *http.Request) {
	session, err := sessionOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.EntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.VaultService.AddEntry(r.Context(), session, req.Name, req.Value); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("tenant_id", session.Tenant.ID).Str("entry", req.Name).Msg("entry saved")

	writeData(w, r, models.EntryNameRequest{Name: req.Name}, http.StatusCreated)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	name, err := entryNameParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.writeEntry(w, r, name)
}

func (h *Handler) getEntryFromBody(w http.ResponseWriter, r *http.Request) {
	var req models.EntryNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.writeEntry(w, r, req.Name)
}

func (h *Handler) writeEntry(w http.ResponseWriter, r *http.Request, name string) {
	session, err := sessionOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.services.VaultService.GetEntry(r.Context(), session, name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, entry, http.StatusOK)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	session, err := sessionOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	results, err := h.services.VaultService.ListEntries(r.Context(), session)
	if err != nil {
		writePartial(w, r, results, err)
		return
	}

	writeData(w, r, results, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	name, err := entryNameParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.removeEntry(w, r, name)
}

func (h *Handler) deleteEntryFromBody(w http.ResponseWriter, r *http.Request) {
	var req models.EntryNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	h.removeEntry(w, r, req.Name)
}

func (h *Handler) removeEntry(w http.ResponseWriter, r *http.Request, name string) {
	session, err := sessionOf(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.VaultService.DeleteEntry(r.Context(), session, name); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("tenant_id", session.Tenant.ID).Str("entry", name).Msg("entry deleted")

	writeData(w, r, models.Empty{}, http.StatusOK)
}
