// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT access token issued by the development file server.
//
// The "sub" claim carries the login of the account the token was issued
// for; the file server only allows writes to repositories whose owner equals
// that login.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Login is the cached "sub" claim.
	Login string `json:"-"`
}

// GetLogin extracts the account login from the token's "sub" claim.
func (t *Token) GetLogin() (string, error) {
	login, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting login from token: %w", err)
	}
	if login == "" {
		return "", errors.New("empty subject in token")
	}

	return login, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
