// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/crypto"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/models"
)

// RemoteStoreFactory builds a RemoteStore for a destination, an access
// token and the credentials documents are encrypted with.
type RemoteStoreFactory func(owner, repo, token string, creds models.Credentials) (RemoteStore, error)

type profileService struct {
	crypto    crypto.CryptoService
	newRemote RemoteStoreFactory

	logger *logger.Logger
}

func NewProfileService(cryptoService crypto.CryptoService, newRemote RemoteStoreFactory, log *logger.Logger) ProfileService {
	return &profileService{
		crypto:    cryptoService,
		newRemote: newRemote,
		logger:    log,
	}
}

// Create writes the auth envelope before the profile: a profile is only
// discoverable once the token it refers to can be recovered. An existing
// profile is never overwritten; the create surfaces adapter.ErrConflict.
func (s *profileService) Create(ctx context.Context, password, owner, repo, token string, data models.Document) (models.Session, models.Credentials, error) {
	if password == "" || owner == "" || repo == "" || token == "" {
		return models.Session{}, models.Credentials{}, ErrInvalidDataProvided
	}

	salt, err := s.crypto.GenerateSalt()
	if err != nil {
		return models.Session{}, models.Credentials{}, fmt.Errorf("error generating data salt: %w", err)
	}
	hash, passwordSalt, err := s.crypto.HashPassword(password)
	if err != nil {
		return models.Session{}, models.Credentials{}, fmt.Errorf("error hashing password: %w", err)
	}

	creds := models.Credentials{Password: password, Salt: salt}
	encryptedToken, err := s.crypto.Encrypt(token, password, salt)
	if err != nil {
		return models.Session{}, models.Credentials{}, fmt.Errorf("error encrypting access token: %w", err)
	}

	remote, err := s.newRemote(owner, repo, token, creds)
	if err != nil {
		return models.Session{}, models.Credentials{}, fmt.Errorf("error connecting to remote store: %w", err)
	}

	if err = remote.WriteAuth(ctx, models.AuthEnvelope{Salt: salt, EncryptedToken: encryptedToken}); err != nil {
		s.logger.Err(err).Str("func", "profileService.Create").Msg("writing auth envelope failed")
		return models.Session{}, models.Credentials{}, err
	}

	err = remote.WriteProfile(ctx, models.Profile{
		PasswordHash: hash,
		PasswordSalt: passwordSalt,
		Owner:        owner,
		Repo:         repo,
		Data:         data,
	})
	if err != nil {
		s.logger.Err(err).Str("func", "profileService.Create").Msg("writing profile failed")
		return models.Session{}, models.Credentials{}, err
	}

	session := models.Session{
		Owner:        owner,
		Repo:         repo,
		Salt:         salt,
		PasswordHash: hash,
		PasswordSalt: passwordSalt,
	}
	return session, creds, nil
}

func (s *profileService) Verify(session models.Session, password string) bool {
	return s.crypto.VerifyPassword(password, session.PasswordHash, session.PasswordSalt)
}

func (s *profileService) Unlock(session models.Session, password string) (models.Credentials, error) {
	if !s.Verify(session, password) {
		return models.Credentials{}, ErrWrongPassword
	}
	return models.Credentials{Password: password, Salt: session.Salt}, nil
}

type recoveryService struct {
	reader adapter.PublicFileReader
	crypto crypto.CryptoService

	logger *logger.Logger
}

func NewRecoveryService(reader adapter.PublicFileReader, cryptoService crypto.CryptoService, log *logger.Logger) RecoveryService {
	return &recoveryService{
		reader: reader,
		crypto: cryptoService,
		logger: log,
	}
}

// Recover reads data/profile.json and data/auth.enc.json from the public
// path, checks password against the plaintext verifier and decrypts the
// access token.
func (s *recoveryService) Recover(ctx context.Context, owner, repo, password string) (models.Recovery, error) {
	if owner == "" || repo == "" || password == "" {
		return models.Recovery{}, ErrInvalidDataProvided
	}

	var envelope models.ProfileEnvelope
	if err := s.fetchJSON(ctx, owner, repo, profilePath, &envelope); err != nil {
		return models.Recovery{}, err
	}
	var auth models.AuthEnvelope
	if err := s.fetchJSON(ctx, owner, repo, authPath, &auth); err != nil {
		return models.Recovery{}, err
	}

	if !s.crypto.VerifyPassword(password, envelope.PasswordHash, envelope.PasswordSalt) {
		return models.Recovery{}, ErrWrongPassword
	}

	token, err := s.crypto.Decrypt(auth.EncryptedToken, password, auth.Salt)
	if err != nil {
		s.logger.Err(err).Str("func", "recoveryService.Recover").Msg("password verified but token cannot be decrypted")
		if errors.Is(err, crypto.ErrDecryption) {
			return models.Recovery{}, fmt.Errorf("%w: %s: %w", ErrCorruptedDocument, authPath, err)
		}
		return models.Recovery{}, fmt.Errorf("error decrypting access token: %w", err)
	}

	if envelope.GithubOwner != "" {
		owner = envelope.GithubOwner
	}
	if envelope.GithubRepo != "" {
		repo = envelope.GithubRepo
	}

	return models.Recovery{
		Session: models.Session{
			Owner:        owner,
			Repo:         repo,
			Salt:         auth.Salt,
			PasswordHash: envelope.PasswordHash,
			PasswordSalt: envelope.PasswordSalt,
		},
		Credentials: models.Credentials{Password: password, Salt: auth.Salt},
		Token:       token,
	}, nil
}

func (s *recoveryService) fetchJSON(ctx context.Context, owner, repo, path string, dst any) error {
	body, err := s.reader.FetchPublic(ctx, owner, repo, path)
	if err != nil {
		return fmt.Errorf("error fetching %s: %w", path, err)
	}
	if body == nil {
		return fmt.Errorf("%w: %s/%s/%s", ErrProfileNotFound, owner, repo, path)
	}

	if err = json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorruptedDocument, path, err)
	}
	return nil
}
