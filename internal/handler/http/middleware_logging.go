// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/go-chi/chi/v5"
)

// withLogging writes one access log line per request. Contents requests
// also carry the repository and the file path they addressed.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		event := logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start))

		// the route context is filled in by the router after this middleware ran
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if owner := rctx.URLParam("owner"); owner != "" {
				event = event.Str("repo", owner+"/"+rctx.URLParam("repo"))
			}
			if path := rctx.URLParam("*"); path != "" {
				event = event.Str("path", path)
			}
		}
		event.Send()
	})
}
