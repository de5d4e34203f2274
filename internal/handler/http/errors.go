// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not a "Bearer <token>" or "token <token>" pair.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoLoginInContext is returned by write handlers that run without the
	// auth middleware in front of them.
	ErrNoLoginInContext = errors.New("no authenticated login in request context")
)
