// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the file server.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version/", h.getServerVersion)
		r.Get("/raw/{owner}/{repo}/{branch}/*", h.getRaw)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/user", h.getUser)
		r.Get("/repos/{owner}/{repo}", h.getRepo)

		r.Get("/repos/{owner}/{repo}/contents", h.getContents)
		r.Get("/repos/{owner}/{repo}/contents/*", h.getContents)
		r.Put("/repos/{owner}/{repo}/contents/*", h.putContents)
		r.Delete("/repos/{owner}/{repo}/contents/*", h.deleteContents)
	})

	router.MethodNotAllowed(unsupportedMethod)

	return router
}
