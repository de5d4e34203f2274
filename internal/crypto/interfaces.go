// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements password-based key derivation, authenticated
// encryption of documents and offline password verification.
//
// Scheme:
//
//	Salt   = GenerateSalt()                          16 random bytes, base64
//	Key    = DeriveKey(password, salt)               PBKDF2-HMAC-SHA256, 100 000 rounds, 256 bit
//	Blob   = Encrypt(plaintext, password, salt)      base64(IV(12) ‖ AES-256-GCM(ct ‖ tag))
//	Hash   = HashPassword(password)                  PBKDF2 with its own fresh salt
//
// The key is re-derived for every call and never cached, so a password change
// can never leave a stale key behind.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_service_mock.go -package=mock

// CryptoService is the client-side crypto core. It knows nothing about the
// network, the local cache or the remote store.
type CryptoService interface {
	// GenerateSalt returns 16 cryptographically random bytes, base64-encoded.
	GenerateSalt() (string, error)

	// DeriveKey derives a 256-bit AES key from password and the base64 salt.
	// Deterministic for a given (password, salt) pair.
	DeriveKey(password, salt string) ([]byte, error)

	// HashPassword generates a fresh salt and returns the PBKDF2 verifier for
	// password together with that salt, both base64-encoded.
	HashPassword(password string) (hash, salt string, err error)

	// VerifyPassword re-derives the verifier with storedSalt and compares it
	// with storedHash.
	VerifyPassword(password, storedHash, storedSalt string) bool

	// Encrypt seals plaintext with a key derived from (password, salt) using a
	// fresh random IV.
	Encrypt(plaintext, password, salt string) (string, error)

	// Decrypt opens a blob produced by Encrypt. Any failure to authenticate
	// the blob returns an error wrapping [ErrDecryption].
	Decrypt(blob, password, salt string) (string, error)
}
