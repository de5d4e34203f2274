// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-track-keeper/internal/app"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/service"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
)

// errorResponse is the status code and body message written for an error.
type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first target matched by
// [errors.Is] wins.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrTokenIsExpired, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpired}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgBadCredentials}},
	{service.ErrForeignRepository, errorResponse{http.StatusForbidden, app.MsgResourceForbidden}},
	{ErrNoLoginInContext, errorResponse{http.StatusUnauthorized, app.MsgRequiresAuthentication}},

	{store.ErrFileNotFound, errorResponse{http.StatusNotFound, app.MsgNotFound}},
	{store.ErrFileAlreadyExists, errorResponse{http.StatusUnprocessableEntity, app.MsgShaNotSupplied}},
	{store.ErrRevisionConflict, errorResponse{http.StatusConflict, app.MsgShaDoesNotMatch}},
	{store.ErrRetryable, errorResponse{http.StatusServiceUnavailable, app.MsgServiceUnavailable}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeServiceError logs err on the request logger and writes the mapped
// error body.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	res := responseFromError(err)
	log := logger.FromRequest(r)
	if res.status >= http.StatusInternalServerError {
		log.Err(err).Msg(msg)
	} else {
		log.Debug().Err(err).Msg(msg)
	}
	utils.WriteError(w, res.status, res.message)
}
