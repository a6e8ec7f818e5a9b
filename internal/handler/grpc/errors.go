// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"github.com/MKhiriev/go-tenant-vault/internal/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errMissingAuthorization = app.NewError(app.KindUnauthenticated, "missing `authorization` metadata")

var kindCodeMap = map[app.Kind]codes.Code{
	app.KindInvalidInput:       codes.InvalidArgument,
	app.KindInvalidCredentials: codes.Unauthenticated,
	app.KindUnauthenticated:    codes.Unauthenticated,
	app.KindPermissionDenied:   codes.PermissionDenied,
	app.KindNotFound:           codes.NotFound,
	app.KindDuplicate:          codes.AlreadyExists,
}

func codeFromError(err error) codes.Code {
	if code, ok := kindCodeMap[app.KindOf(err)]; ok {
		return code
	}
	return codes.Internal
}

// toStatus converts a vault error into a gRPC status carrying the caller
// facing message of its kind.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codeFromError(err), app.Message(err))
}
