// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities used across the
// client and the development file server: context keys, JSON response
// writing, the HTTP client constructor, JWT token handling, blob hashing and
// trace id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// LoginCtxKey is the key under which the authenticated account login is
// stored in a request context.
//
//	ctx := context.WithValue(ctx, utils.LoginCtxKey, "alice")
var LoginCtxKey = contextKey("login")

// GetLoginFromContext retrieves the authenticated login from ctx. ok is false
// when the value is missing, has an unexpected type or is empty.
func GetLoginFromContext(ctx context.Context) (string, bool) {
	login, ok := ctx.Value(LoginCtxKey).(string)
	return login, ok && login != ""
}
