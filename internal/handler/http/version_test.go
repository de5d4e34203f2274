// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/mock"
	"github.com/MKhiriev/go-track-keeper/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newHandlerWithVersion(t *testing.T, version string) *Handler {
	t.Helper()
	appInfo := mock.NewMockAppInfoService(gomock.NewController(t))
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(version).AnyTimes()

	return NewHandler(&service.Services{AppInfoService: appInfo}, 0, logger.Nop())
}

func TestGetServerVersion(t *testing.T) {
	for _, want := range []string{"1.2.3", "", "v2.0.0-beta+build.42"} {
		h := newHandlerWithVersion(t, want)

		rec := httptest.NewRecorder()
		h.getServerVersion(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
		assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	}
}

func TestGetServerVersion_ViaRouter(t *testing.T) {
	router := newHandlerWithVersion(t, "3.0.0").Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3.0.0", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}
