// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-track-keeper/internal/service"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest},
		{service.ErrTokenIsExpired, http.StatusUnauthorized},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{ErrNoLoginInContext, http.StatusUnauthorized},
		{service.ErrForeignRepository, http.StatusForbidden},
		{store.ErrFileNotFound, http.StatusNotFound},
		{store.ErrRevisionConflict, http.StatusConflict},
		{store.ErrFileAlreadyExists, http.StatusUnprocessableEntity},
		{store.ErrRetryable, http.StatusServiceUnavailable},
		{fmt.Errorf("update data/a.json: %w", store.ErrRevisionConflict), http.StatusConflict},
		{store.ErrExecutingQuery, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), "%v", tt.err)
	}
}
