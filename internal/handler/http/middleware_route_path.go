// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// withEscapedRoutePath makes chi route on the escaped request path. Go only
// keeps RawPath when the decoded path would not re-encode to it, so without
// this a name like "a%2541" would be matched as "a%41" and decoded again by
// the handler. Path params therefore always arrive escaped exactly once.
func withEscapedRoutePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath == "" {
			rctx.RoutePath = r.URL.EscapedPath()
		}
		next.ServeHTTP(w, r)
	})
}
