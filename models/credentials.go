// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credentials is the key material every encrypt/decrypt call is derived from.
// It is passed explicitly to the components that need it and is never kept
// in package-level state.
type Credentials struct {
	// Password is the user secret. It is never persisted remotely in plaintext.
	Password string `json:"-"`

	// Salt is the base64-encoded data-encryption salt. Not a secret.
	Salt string `json:"salt"`
}

// IsZero reports whether no credential material has been provided.
func (c Credentials) IsZero() bool {
	return c.Password == "" && c.Salt == ""
}

// Session is the local-only record that lets the client unlock its data
// without contacting the remote store: the remote destination, the data
// salt and the offline password verifier.
type Session struct {
	Owner        string `json:"owner"`
	Repo         string `json:"repo"`
	Salt         string `json:"salt"`
	PasswordHash string `json:"password_hash"`
	PasswordSalt string `json:"password_salt"`
}
