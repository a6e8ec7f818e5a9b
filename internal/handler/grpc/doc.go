// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the tenant vault as the gRPC service
// vault.v1.VaultService.
//
// Messages are the JSON models of package models, carried by a codec
// registered under the "json" content-subtype, so no generated protobuf code
// is involved. The session token travels in the "authorization" metadata
// key as "Bearer <token>".
package grpc
