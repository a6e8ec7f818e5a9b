// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-tenant-vault/internal/config"
	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/MKhiriev/go-tenant-vault/models"
	"github.com/go-resty/resty/v2"
)

// hashHeader carries the hex HMAC-SHA256 of a body under the shared hash
// key. The server uses the same header name.
const hashHeader = "HashSHA256"

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// envelope is the wire form of [models.APIResponse] with the payload left
// undecoded.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises the base URL from cfg.HTTPAddress and, when
// cfg.HashKey is set, initialises the shared HMAC hasher pool used to sign
// request bodies and verify response bodies.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg *config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	a := &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		hashKey: cfg.HashKey,
		logger:  logger,
	}

	if a.hashKey != "" {
		utils.InitHasherPool(a.hashKey)
		a.client.OnAfterResponse(verifyResponseHash)
	}

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// verifyResponseHash rejects signed responses whose body does not match the
// signature. Unsigned responses pass.
func verifyResponseHash(_ *resty.Client, resp *resty.Response) error {
	want := resp.Header().Get(hashHeader)
	if want == "" {
		return nil
	}

	if !utils.VerifyHex(resp.Body(), want) {
		return ErrIntegrityCheckFailed
	}
	return nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Version implements [ServerAdapter] through GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionInfo, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return models.VersionInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionInfo{}, err
	}

	var info models.VersionInfo
	if err = decodeData(resp, &info); err != nil {
		return models.VersionInfo{}, fmt.Errorf("decode version response: %w", err)
	}
	return info, nil
}

// Login implements [ServerAdapter] through POST /api/login.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	r, err := h.jsonRequest(ctx, req)
	if err != nil {
		return models.LoginResponse{}, err
	}

	resp, err := r.Post("/api/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	var login models.LoginResponse
	if err = decodeData(resp, &login); err != nil {
		return models.LoginResponse{}, fmt.Errorf("decode login response: %w", err)
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		token = login.Token
	}
	if token == "" {
		return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return login, nil
}

// Logout implements [ServerAdapter] through POST /api/logout.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	if h.Token() == "" {
		return ErrNotLoggedIn
	}

	r, err := h.jsonRequest(ctx, models.Empty{})
	if err != nil {
		return err
	}

	resp, err := r.Post("/api/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

// AddEntry implements [ServerAdapter] through POST /api/entries.
func (h *httpServerAdapter) AddEntry(ctx context.Context, req models.EntryRequest) error {
	r, err := h.jsonRequest(ctx, req)
	if err != nil {
		return err
	}

	resp, err := r.Post("/api/entries")
	if err != nil {
		return fmt.Errorf("add entry request: %w", err)
	}
	return mapHTTPError(resp)
}

// GetEntry implements [ServerAdapter] through GET /api/entries/{name}.
func (h *httpServerAdapter) GetEntry(ctx context.Context, name string) (models.EntryResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("name", name).
		Get("/api/entries/{name}")
	if err != nil {
		return models.EntryResponse{}, fmt.Errorf("get entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EntryResponse{}, err
	}

	var entry models.EntryResponse
	if err = decodeData(resp, &entry); err != nil {
		return models.EntryResponse{}, fmt.Errorf("decode entry response: %w", err)
	}
	return entry, nil
}

// ListEntries implements [ServerAdapter] through GET /api/entries. A 500
// response that still carries results is a partial listing.
func (h *httpServerAdapter) ListEntries(ctx context.Context) ([]models.EntryResult, error) {
	resp, err := h.authedRequest(ctx).Get("/api/entries")
	if err != nil {
		return nil, fmt.Errorf("list entries request: %w", err)
	}

	if resp.StatusCode() == http.StatusInternalServerError {
		var results []models.EntryResult
		if decodeData(resp, &results) == nil && len(results) > 0 {
			return results, fmt.Errorf("%w: %s", ErrPartialList, errorMessage(resp))
		}
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var results []models.EntryResult
	if err = decodeData(resp, &results); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	if results == nil {
		results = []models.EntryResult{}
	}
	return results, nil
}

// DeleteEntry implements [ServerAdapter] through DELETE /api/entries/{name}.
func (h *httpServerAdapter) DeleteEntry(ctx context.Context, name string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("name", name).
		Delete("/api/entries/{name}")
	if err != nil {
		return fmt.Errorf("delete entry request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// jsonRequest encodes body up front so the signature covers the exact bytes
// that are sent.
func (h *httpServerAdapter) jsonRequest(ctx context.Context, body any) (*resty.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if h.hashKey != "" {
		req.SetHeader(hashHeader, utils.HashHex(payload))
	}
	return req, nil
}

func decodeData(resp *resty.Response, v any) error {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return errors.New("response carries no data")
	}
	return json.Unmarshal(env.Data, v)
}
