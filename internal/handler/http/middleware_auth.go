// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-track-keeper/internal/app"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/service"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.AuthService.ParseToken] and stores the login the token was issued
// for in the request context under [utils.LoginCtxKey].
//
// Requests are rejected with 401 Unauthorized and a JSON error body when the
// header is missing or malformed, or when the token is expired or invalid.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, http.StatusUnauthorized, app.MsgRequiresAuthentication)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(errors.Join(ErrInvalidAuthorizationHeader, err)).Send()
			utils.WriteError(w, http.StatusUnauthorized, app.MsgBadCredentials)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Debug().Err(err).Msg("token expired")
				utils.WriteError(w, http.StatusUnauthorized, app.MsgTokenIsExpired)
			default:
				log.Debug().Err(err).Msg("error occurred during parsing token")
				utils.WriteError(w, http.StatusUnauthorized, app.MsgBadCredentials)
			}
			return
		}

		ctx = context.WithValue(ctx, utils.LoginCtxKey, token.Login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
