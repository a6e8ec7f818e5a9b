// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/MKhiriev/go-tenant-vault/internal/logger"
	"github.com/MKhiriev/go-tenant-vault/internal/service"
	"github.com/MKhiriev/go-tenant-vault/internal/utils"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationKey = "authorization"
	traceIDKey       = "x-trace-id"
)

// publicMethods are served without a session.
var publicMethods = map[string]struct{}{
	MethodVersion: {},
	MethodLogin:   {},
}

func firstMetadata(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

// withTraceID attaches a child logger carrying trace_id to the call context
// and returns the id in the response header.
func (h *Handler) withTraceID(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := firstMetadata(ctx, traceIDKey)
	if traceID == "" {
		traceID = utils.NewTraceID()
	}

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	_ = grpc.SetHeader(ctx, metadata.Pairs(traceIDKey, traceID))

	return handler(l.WithContext(ctx), req)
}

// withLogging writes one access log line per call and converts the
// returned error into a gRPC status.
func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)
	err = toStatus(err)

	logger.FromContext(ctx).Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

// withRecovery turns a handler panic into codes.Internal.
func (h *Handler) withRecovery(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if p := recover(); p != nil {
			logger.FromContext(ctx).Error().
				Str("method", info.FullMethod).
				Str("panic", fmt.Sprint(p)).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
			err = status.Error(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// withSession resolves the bearer token of every non-public call into a
// session stored under [utils.SessionCtxKey]. The session's copy of the
// vault key is wiped when the call returns.
func (h *Handler) withSession(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	header := firstMetadata(ctx, authorizationKey)
	if header == "" {
		logger.FromContext(ctx).Warn().Str("method", info.FullMethod).Msg("call without session")
		return nil, errMissingAuthorization
	}

	token, err := utils.ParseBearerToken(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", service.ErrSessionInvalid, err)
	}

	session, err := h.services.SessionManager.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	defer session.Wipe()

	ctx = context.WithValue(ctx, utils.SessionCtxKey, &session)
	ctx = context.WithValue(ctx, utils.TokenCtxKey, token)
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, session.User.ID)

	return handler(ctx, req)
}
