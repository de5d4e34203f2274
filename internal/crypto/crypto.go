// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 round count used for both data keys and
	// password verifiers.
	DefaultIterations = 100_000

	saltSize = 16
	keySize  = 32 // AES-256
	ivSize   = 12
)

// cryptoService is the private implementation of [CryptoService].
type cryptoService struct {
	iterations int
	random     io.Reader
}

// Option tunes a [CryptoService].
type Option func(*cryptoService)

// WithIterations overrides the PBKDF2 round count. Intended for tests only;
// blobs produced with a different count are not interchangeable.
func WithIterations(n int) Option {
	return func(c *cryptoService) {
		if n > 0 {
			c.iterations = n
		}
	}
}

// NewCryptoService constructs a [CryptoService] with PBKDF2-HMAC-SHA256 at
// [DefaultIterations] rounds and AES-256-GCM.
func NewCryptoService(opts ...Option) CryptoService {
	c := &cryptoService{
		iterations: DefaultIterations,
		random:     rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateSalt implements [CryptoService].
func (c *cryptoService) GenerateSalt() (string, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// DeriveKey implements [CryptoService].
func (c *cryptoService) DeriveKey(password, salt string) ([]byte, error) {
	rawSalt, err := decodeSalt(salt)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key([]byte(password), rawSalt, c.iterations, keySize, sha256.New), nil
}

// HashPassword implements [CryptoService]. The verifier uses the same
// derivation parameters as data keys but always with its own fresh salt, so
// it is independent of any encrypted document.
func (c *cryptoService) HashPassword(password string) (string, string, error) {
	salt, err := c.GenerateSalt()
	if err != nil {
		return "", "", err
	}

	hash, err := c.DeriveKey(password, salt)
	if err != nil {
		return "", "", err
	}

	return base64.StdEncoding.EncodeToString(hash), salt, nil
}

// VerifyPassword implements [CryptoService]. A malformed stored hash or salt
// never verifies.
func (c *cryptoService) VerifyPassword(password, storedHash, storedSalt string) bool {
	want, err := base64.StdEncoding.DecodeString(storedHash)
	if err != nil || len(want) == 0 {
		return false
	}

	got, err := c.DeriveKey(password, storedSalt)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(got, want) == 1
}

// Encrypt implements [CryptoService]. Output layout before base64:
// IV (12 bytes) ‖ ciphertext ‖ GCM tag (16 bytes).
func (c *cryptoService) Encrypt(plaintext, password, salt string) (string, error) {
	gcm, err := c.newGCM(password, salt)
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	blob := gcm.Seal(iv, iv, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [CryptoService].
func (c *cryptoService) Decrypt(blob, password, salt string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %w", ErrDecryption, err)
	}
	if len(raw) < ivSize {
		return "", fmt.Errorf("%w: blob too short", ErrDecryption)
	}

	// A malformed salt is a configuration error, not an unreadable blob.
	gcm, err := c.newGCM(password, salt)
	if err != nil {
		return "", err
	}

	iv, ciphertext := raw[:ivSize], raw[ivSize:]
	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	return string(plaintext), nil
}

func (c *cryptoService) newGCM(password, salt string) (cipher.AEAD, error) {
	key, err := c.DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}

func decodeSalt(salt string) ([]byte, error) {
	if salt == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSalt)
	}
	raw, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSalt, err)
	}
	return raw, nil
}
