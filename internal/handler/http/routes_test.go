// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-track-keeper/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RegistersRoutes(t *testing.T) {
	router, ok := newTestServer(t).router.(*chi.Mux)
	require.True(t, ok)

	registered := map[string][]string{}
	require.NoError(t, chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[route] = append(registered[route], method)
		return nil
	}))

	want := map[string][]string{
		"/api/version/":                    {http.MethodGet},
		"/raw/{owner}/{repo}/{branch}/*":   {http.MethodGet},
		"/user":                            {http.MethodGet},
		"/repos/{owner}/{repo}":            {http.MethodGet},
		"/repos/{owner}/{repo}/contents":   {http.MethodGet},
		"/repos/{owner}/{repo}/contents/*": {http.MethodDelete, http.MethodGet, http.MethodPut},
	}
	for route, methods := range want {
		assert.ElementsMatch(t, methods, registered[route], "route %s", route)
	}
}

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/user"},
		{http.MethodGet, "/repos/octo/tracker"},
		{http.MethodGet, "/repos/octo/tracker/contents"},
		{http.MethodGet, "/repos/octo/tracker/contents/data/a.json"},
		{http.MethodPut, "/repos/octo/tracker/contents/data/a.json"},
		{http.MethodDelete, "/repos/octo/tracker/contents/data/a.json"},
	} {
		rec := ts.do(tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestInit_InvalidToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, app.MsgBadCredentials, errorMessage(t, rec))
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_UnknownRoutesAndMethods_Return404(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodGet, "/totally/wrong"},
		{http.MethodPost, "/api/version/"},
		{http.MethodPost, "/user"},
		{http.MethodPatch, "/repos/octo/tracker/contents/data/a.json"},
		{http.MethodPut, "/raw/octo/tracker/main/data/a.json"},
	} {
		rec := ts.do(tc.method, tc.path, "octo", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}
