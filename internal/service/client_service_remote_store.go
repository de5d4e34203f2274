// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/crypto"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/models"
)

// CorruptionHandler receives every remote document that exists but could
// not be decrypted or parsed. err wraps [ErrCorruptedDocument].
type CorruptionHandler func(key string, err error)

// RemoteStoreOption tunes a RemoteStore.
type RemoteStoreOption func(*remoteStore)

// WithCorruptionHandler installs h as the corruption diagnostic channel.
func WithCorruptionHandler(h CorruptionHandler) RemoteStoreOption {
	return func(s *remoteStore) {
		s.onCorruption = h
	}
}

// remoteStore is the RemoteStore implementation over an
// adapter.RemoteFileClient.
type remoteStore struct {
	client adapter.RemoteFileClient
	crypto crypto.CryptoService
	creds  models.Credentials

	// tokens caches the last revision token seen per remote path.
	tokensMu sync.Mutex
	tokens   map[string]string

	// locks serialises operations on the same key.
	locks keyLocks

	onCorruption CorruptionHandler
	logger       *logger.Logger
}

// NewRemoteStore builds a RemoteStore that encrypts every document with
// creds before handing it to client.
func NewRemoteStore(client adapter.RemoteFileClient, cryptoService crypto.CryptoService, creds models.Credentials, log *logger.Logger, opts ...RemoteStoreOption) RemoteStore {
	s := &remoteStore{
		client: client,
		crypto: cryptoService,
		creds:  creds,
		tokens: make(map[string]string),
		logger: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *remoteStore) Read(ctx context.Context, key string) (models.Document, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(key)
	defer unlock()

	path := documentPath(key)
	content, found, err := s.fetch(ctx, path)
	if err != nil || !found {
		return nil, err
	}

	plain, err := s.crypto.Decrypt(content, s.creds.Password, s.creds.Salt)
	if err != nil {
		if errors.Is(err, crypto.ErrDecryption) {
			s.reportCorruption(key, err)
			return nil, nil
		}
		return nil, fmt.Errorf("error decrypting %s: %w", path, err)
	}

	if !json.Valid([]byte(plain)) {
		s.reportCorruption(key, errors.New("payload is not valid JSON"))
		return nil, nil
	}

	return models.Document(plain), nil
}

func (s *remoteStore) Write(ctx context.Context, key string, doc models.Document) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if !json.Valid(doc) {
		return fmt.Errorf("%w: key %q", ErrInvalidDocument, key)
	}

	unlock := s.locks.lock(key)
	defer unlock()

	blob, err := s.crypto.Encrypt(string(doc), s.creds.Password, s.creds.Salt)
	if err != nil {
		return fmt.Errorf("error encrypting %s: %w", key, err)
	}

	return s.put(ctx, documentPath(key), blob, "update "+key)
}

func (s *remoteStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	unlock := s.locks.lock(key)
	defer unlock()

	path := documentPath(key)
	token := s.token(path)
	if token == "" {
		file, err := s.client.GetFile(ctx, path)
		if err != nil {
			return fmt.Errorf("error reading %s before delete: %w", path, err)
		}
		if file == nil {
			return nil
		}
		token = file.RevisionToken
	}

	err := s.client.DeleteFile(ctx, path, token, "delete "+key)
	if err != nil && !errors.Is(err, adapter.ErrNotFound) {
		return fmt.Errorf("error deleting %s: %w", path, err)
	}

	s.forgetToken(path)
	return nil
}

func (s *remoteStore) List(ctx context.Context) ([]string, error) {
	entries, err := s.client.ListFiles(ctx, remoteDataDir)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", remoteDataDir, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type != "" && entry.Type != "file" {
			continue
		}
		key, ok := documentKey(entry.Name)
		if !ok || key == profileKey || key == authKey {
			continue
		}
		if entry.RevisionToken != "" {
			s.setToken(documentPath(key), entry.RevisionToken)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys, nil
}

func (s *remoteStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}

	_, found, err := s.fetch(ctx, documentPath(key))
	return found, err
}

func (s *remoteStore) ReadProfile(ctx context.Context) (*models.Profile, error) {
	unlock := s.locks.lock(profileKey)
	defer unlock()

	content, found, err := s.fetch(ctx, profilePath)
	if err != nil || !found {
		return nil, err
	}

	var envelope models.ProfileEnvelope
	if err = json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptedDocument, profilePath, err)
	}

	profile := &models.Profile{
		PasswordHash: envelope.PasswordHash,
		PasswordSalt: envelope.PasswordSalt,
		Owner:        envelope.GithubOwner,
		Repo:         envelope.GithubRepo,
	}
	if envelope.EncryptedData == "" {
		return profile, nil
	}

	plain, err := s.crypto.Decrypt(envelope.EncryptedData, s.creds.Password, s.creds.Salt)
	if err != nil {
		return nil, fmt.Errorf("error decrypting profile data: %w", err)
	}
	profile.Data = models.Document(plain)

	return profile, nil
}

func (s *remoteStore) WriteProfile(ctx context.Context, profile models.Profile) error {
	data := profile.Data
	if len(data) == 0 {
		data = models.Document("{}")
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: profile data", ErrInvalidDocument)
	}

	unlock := s.locks.lock(profileKey)
	defer unlock()

	encrypted, err := s.crypto.Encrypt(string(data), s.creds.Password, s.creds.Salt)
	if err != nil {
		return fmt.Errorf("error encrypting profile data: %w", err)
	}

	body, err := json.Marshal(models.ProfileEnvelope{
		PasswordHash:  profile.PasswordHash,
		PasswordSalt:  profile.PasswordSalt,
		GithubOwner:   profile.Owner,
		GithubRepo:    profile.Repo,
		EncryptedData: encrypted,
	})
	if err != nil {
		return fmt.Errorf("error encoding profile envelope: %w", err)
	}

	return s.put(ctx, profilePath, string(body), "update profile")
}

func (s *remoteStore) ReadAuth(ctx context.Context) (*models.AuthEnvelope, error) {
	unlock := s.locks.lock(authKey)
	defer unlock()

	content, found, err := s.fetch(ctx, authPath)
	if err != nil || !found {
		return nil, err
	}

	var envelope models.AuthEnvelope
	if err = json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptedDocument, authPath, err)
	}
	return &envelope, nil
}

func (s *remoteStore) WriteAuth(ctx context.Context, envelope models.AuthEnvelope) error {
	unlock := s.locks.lock(authKey)
	defer unlock()

	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error encoding auth envelope: %w", err)
	}

	return s.put(ctx, authPath, string(body), "update auth")
}

// fetch reads path and caches its revision token. found is false when the
// remote has no such file.
func (s *remoteStore) fetch(ctx context.Context, path string) (content string, found bool, err error) {
	file, err := s.client.GetFile(ctx, path)
	if err != nil {
		return "", false, fmt.Errorf("error reading %s: %w", path, err)
	}
	if file == nil {
		s.forgetToken(path)
		return "", false, nil
	}

	s.setToken(path, file.RevisionToken)
	return file.Content, true, nil
}

// put writes content with the cached token of path and stores the token the
// remote returns.
func (s *remoteStore) put(ctx context.Context, path, content, message string) error {
	token, err := s.client.PutFile(ctx, path, content, s.token(path), message)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	s.setToken(path, token)
	return nil
}

func (s *remoteStore) reportCorruption(key string, cause error) {
	err := fmt.Errorf("%w: key %q: %w", ErrCorruptedDocument, key, cause)
	s.logger.WithKey(key).Err(err).Str("func", "remoteStore.Read").Msg("skipping corrupted remote document")

	if s.onCorruption != nil {
		s.onCorruption(key, err)
	}
}

func (s *remoteStore) RevisionTokens() map[string]string {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()
	return maps.Clone(s.tokens)
}

func (s *remoteStore) RestoreRevisionTokens(tokens map[string]string) {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()
	for path, token := range tokens {
		if _, ok := s.tokens[path]; !ok && token != "" {
			s.tokens[path] = token
		}
	}
}

func (s *remoteStore) token(path string) string {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()
	return s.tokens[path]
}

func (s *remoteStore) setToken(path, token string) {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()
	s.tokens[path] = token
}

func (s *remoteStore) forgetToken(path string) {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()
	delete(s.tokens, path)
}
