// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-tenant-vault/internal/app"
)

var kindStatusMap = map[app.Kind]int{
	app.KindInvalidInput:       http.StatusBadRequest,
	app.KindInvalidCredentials: http.StatusUnauthorized,
	app.KindUnauthenticated:    http.StatusUnauthorized,
	app.KindPermissionDenied:   http.StatusForbidden,
	app.KindNotFound:           http.StatusNotFound,
	app.KindDuplicate:          http.StatusConflict,
}

func statusFromError(err error) int {
	if status, ok := kindStatusMap[app.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
