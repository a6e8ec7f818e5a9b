// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, h.services.AppInfoService.GetAppInfo(r.Context()), http.StatusOK)
}
