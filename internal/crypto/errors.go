// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDecryption is returned when a blob cannot be authenticated: wrong
	// password, wrong salt, truncated or tampered data. No partial plaintext
	// is ever returned alongside it.
	ErrDecryption = errors.New("decryption failed")

	// ErrInvalidSalt is returned when a salt is not valid base64 or is empty.
	ErrInvalidSalt = errors.New("invalid salt")
)
