// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, withEscapedRoutePath)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.hashKey != "" {
		router.Use(h.withHashing)
	}
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.version)
		r.Post("/api/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/logout", h.logout)

		// tenant vault
		r.Group(func(r chi.Router) {
			r.Use(h.tenantOnly)

			r.Get("/api/entries", h.listEntries)
			r.Post("/api/entries", h.addEntry)
			r.Post("/api/entries/get", h.getEntryFromBody)
			r.Post("/api/entries/delete", h.deleteEntryFromBody)
			r.Get("/api/entries/{name}", h.getEntry)
			r.Delete("/api/entries/{name}", h.deleteEntry)
		})

		// administration
		r.Group(func(r chi.Router) {
			r.Use(h.superuserOnly)

			r.Get("/api/admin/tenants", h.listTenants)
			r.Post("/api/admin/tenants", h.createTenant)
			r.Delete("/api/admin/tenants/{id}", h.deleteTenant)
			r.Post("/api/admin/tenants/{id}/users", h.createTenantUser)
			r.Post("/api/admin/superusers", h.createSuperuser)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
