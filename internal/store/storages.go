// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
)

// Storages groups the repositories of the development file server.
type Storages struct {
	FileRepository FileRepository

	db *DB
}

// NewStorages connects to PostgreSQL, runs the migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		FileRepository: NewFileRepository(db, log),
		db:             db,
	}, nil
}

// Close releases the database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
