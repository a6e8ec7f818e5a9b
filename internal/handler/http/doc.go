// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the vault.
//
// Routes are wired with chi. Every response body is a [models.APIResponse]
// envelope and every error is turned into a status code by its
// [app.Kind]. Cross-cutting concerns (tracing, access logging, compression,
// body integrity, request timeouts and session resolution) are middleware
// applied before a request reaches the service layer.
package http
