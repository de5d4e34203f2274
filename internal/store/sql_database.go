// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the persistence layer: the client local cache (sqlite,
// bbolt and in-memory implementations) and the PostgreSQL file repository of
// the development file server.
package store

import (
	"database/sql"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/migrations"
)

// DB is an open SQL database together with the migration dialect it speaks.
type DB struct {
	*sql.DB
	dialect string
	logger  *logger.Logger
}

// Migrate applies the embedded schema migrations for the database dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
