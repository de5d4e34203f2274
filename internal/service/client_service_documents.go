// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/models"
)

type documentService struct {
	local  store.LocalCache
	engine SyncEngine

	logger *logger.Logger
}

// NewDocumentService returns the storage contract over local. Every
// successful write or delete schedules a push of the key on engine.
func NewDocumentService(local store.LocalCache, engine SyncEngine, log *logger.Logger) DocumentService {
	return &documentService{
		local:  local,
		engine: engine,
		logger: log,
	}
}

func (s *documentService) Read(ctx context.Context, key string) (models.Document, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return s.local.Read(ctx, key)
}

func (s *documentService) Write(ctx context.Context, key string, doc models.Document) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if !json.Valid(doc) {
		return fmt.Errorf("%w: key %q", ErrInvalidDocument, key)
	}

	if err := s.local.Write(ctx, key, doc); err != nil {
		s.logger.WithKey(key).Err(err).Str("func", "documentService.Write").Msg("local write failed")
		return fmt.Errorf("error writing %q: %w", key, err)
	}

	s.engine.PushKey(ctx, key)
	return nil
}

func (s *documentService) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if err := s.local.Delete(ctx, key); err != nil {
		s.logger.WithKey(key).Err(err).Str("func", "documentService.Delete").Msg("local delete failed")
		return fmt.Errorf("error deleting %q: %w", key, err)
	}

	s.engine.PushKey(ctx, key)
	return nil
}

func (s *documentService) List(ctx context.Context) ([]string, error) {
	return s.local.List(ctx)
}

func (s *documentService) Exists(ctx context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	return s.local.Exists(ctx, key)
}

// Repository is a typed view of one document for DAOs. Load falls back to
// a default value when the document does not exist yet.
type Repository[T any] struct {
	docs         DocumentService
	key          string
	defaultValue func() T
}

// NewRepository binds key of docs to T. defaultValue is called for every
// Load of a missing document, so it may return fresh maps or slices.
func NewRepository[T any](docs DocumentService, key string, defaultValue func() T) *Repository[T] {
	return &Repository[T]{docs: docs, key: key, defaultValue: defaultValue}
}

// Key returns the document key the repository is bound to.
func (r *Repository[T]) Key() string {
	return r.key
}

func (r *Repository[T]) Load(ctx context.Context) (T, error) {
	var zero T

	doc, err := r.docs.Read(ctx, r.key)
	if err != nil {
		return zero, err
	}
	if doc == nil {
		if r.defaultValue == nil {
			return zero, nil
		}
		return r.defaultValue(), nil
	}

	var value T
	if err = json.Unmarshal(doc, &value); err != nil {
		return zero, fmt.Errorf("%w: key %q: %w", ErrInvalidDocument, r.key, err)
	}
	return value, nil
}

func (r *Repository[T]) Save(ctx context.Context, value T) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding %q: %w", r.key, err)
	}
	return r.docs.Write(ctx, r.key, doc)
}

func (r *Repository[T]) Delete(ctx context.Context) error {
	return r.docs.Delete(ctx, r.key)
}
