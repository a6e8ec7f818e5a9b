// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/models"
)

// writeJSON writes resp as the whole response body. Responses may carry
// decrypted values, so intermediaries must not store them.
func writeJSON(w http.ResponseWriter, resp models.APIResponse, statusCode int) error {
	body, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return fmt.Errorf("marshal response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	_, err = w.Write(body)
	return err
}

func writeData(w http.ResponseWriter, r *http.Request, data any, statusCode int) {
	if err := writeJSON(w, models.APIResponse{Success: true, Data: data}, statusCode); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeData").Msg("failed to write response")
	}
}

// writeError logs err and answers with the status and message of its kind.
// Internal details stay in the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Failure(err)
	if status < http.StatusInternalServerError {
		event = logger.FromRequest(r).Warn().Err(err).Str("kind", app.KindOf(err).String())
	}
	event.Str("uri", r.RequestURI).Int("status", status).Msg("request failed")

	if werr := writeJSON(w, models.APIResponse{Error: app.Message(err)}, status); werr != nil {
		logger.FromRequest(r).Err(werr).Str("func", "writeError").Msg("failed to write response")
	}
}

// writePartial answers a listing that could not decrypt every entry: all
// results are returned, success is false and the error names the failures.
func writePartial(w http.ResponseWriter, r *http.Request, results []models.EntryResult, err error) {
	var partial *service.PartialListError
	if !errors.As(err, &partial) {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Failure(err).Strs("entries", partial.Failed).Msg("partial entry listing")

	resp := models.APIResponse{Data: results, Error: partial.Error()}
	if werr := writeJSON(w, resp, http.StatusInternalServerError); werr != nil {
		logger.FromRequest(r).Err(werr).Str("func", "writePartial").Msg("failed to write response")
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errors.Join(ErrInvalidJSON, err)
	}
	return nil
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errRouteNotFound)
}
