// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/MKhiriev/go-tenant-vault/models"
	"google.golang.org/grpc"
)

// Handler is the root gRPC transport handler. It implements [VaultServer]
// by delegating to the service layer.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Init builds a gRPC server with the vault service registered behind the
// trace, logging, recovery and session interceptors.
func (h *Handler) Init(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(
		h.withTraceID,
		h.withLogging,
		h.withRecovery,
		h.withSession,
	))

	server := grpc.NewServer(opts...)
	RegisterVaultServer(server, h)

	return server
}

func sessionOf(ctx context.Context) (models.Session, error) {
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return models.Session{}, service.ErrNoSession
	}
	return *session, nil
}

func (h *Handler) Version(ctx context.Context, _ *models.Empty) (*models.VersionInfo, error) {
	info := h.services.AppInfoService.GetAppInfo(ctx)
	return &info, nil
}

// Login opens a session. A bearer token in the call metadata names the
// session to replace once the login succeeds.
func (h *Handler) Login(ctx context.Context, in *models.LoginRequest) (*models.LoginResponse, error) {
	var currentToken string
	if header := firstMetadata(ctx, authorizationKey); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			currentToken = token
		}
	}

	resp, err := h.services.LoginService.Login(ctx, *in, currentToken)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("login failed")
		return nil, err
	}

	return &resp, nil
}

func (h *Handler) Logout(ctx context.Context, _ *models.Empty) (*models.Empty, error) {
	token, ok := utils.GetTokenFromContext(ctx)
	if !ok {
		return nil, service.ErrNoSession
	}

	if err := h.services.LoginService.Logout(ctx, token); err != nil {
		return nil, err
	}
	return &models.Empty{}, nil
}

func (h *Handler) AddEntry(ctx context.Context, in *models.EntryRequest) (*models.Empty, error) {
	session, err := sessionOf(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.services.VaultService.AddEntry(ctx, session, in.Name, in.Value); err != nil {
		return nil, err
	}
	return &models.Empty{}, nil
}

func (h *Handler) GetEntry(ctx context.Context, in *models.EntryNameRequest) (*models.EntryResponse, error) {
	session, err := sessionOf(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := h.services.VaultService.GetEntry(ctx, session, in.Name)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListEntries returns every entry of the vault. Entries that cannot be
// decrypted are listed in Failed and carry an error instead of a value; the
// call itself still succeeds so the readable entries are not lost.
func (h *Handler) ListEntries(ctx context.Context, _ *models.Empty) (*models.EntryList, error) {
	session, err := sessionOf(ctx)
	if err != nil {
		return nil, err
	}

	results, err := h.services.VaultService.ListEntries(ctx, session)
	var partial *service.PartialListError
	switch {
	case errors.As(err, &partial):
		logger.FromContext(ctx).Failure(err).Strs("entries", partial.Failed).Msg("partial entry listing")
		return &models.EntryList{Entries: results, Failed: partial.Failed}, nil
	case err != nil:
		return nil, err
	}

	return &models.EntryList{Entries: results}, nil
}

func (h *Handler) DeleteEntry(ctx context.Context, in *models.EntryNameRequest) (*models.Empty, error) {
	session, err := sessionOf(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.services.VaultService.DeleteEntry(ctx, session, in.Name); err != nil {
		return nil, err
	}
	return &models.Empty{}, nil
}
