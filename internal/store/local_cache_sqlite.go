// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/models"
)

type sqliteLocalCache struct {
	db        *DB
	namespace string
	now       func() time.Time
	logger    *logger.Logger
}

// NewSQLiteLocalCache returns a [LocalCache] scoped to namespace over an
// already migrated sqlite database. The database handle is owned by the
// caller.
func NewSQLiteLocalCache(db *DB, namespace string, log *logger.Logger) LocalCache {
	return &sqliteLocalCache{
		db:        db,
		namespace: namespace,
		now:       time.Now,
		logger:    log,
	}
}

func (c *sqliteLocalCache) Read(ctx context.Context, key string) (models.Document, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx, selectDocument, c.namespace, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		c.logger.Err(err).
			Str("func", "sqliteLocalCache.Read").
			Str("key", key).
			Msg("failed to read document")
		return nil, fmt.Errorf("%w: read %s: %w", ErrExecutingQuery, key, err)
	}

	return models.Document(body), nil
}

func (c *sqliteLocalCache) Write(ctx context.Context, key string, doc models.Document) error {
	return c.inTx(ctx, "sqliteLocalCache.Write", key, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertDocument, c.namespace, key, []byte(doc)); err != nil {
			return fmt.Errorf("%w: upsert document: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, upsertDocumentMeta, c.namespace, key, c.now().UnixMilli()); err != nil {
			return fmt.Errorf("%w: upsert document meta: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (c *sqliteLocalCache) Delete(ctx context.Context, key string) error {
	return c.inTx(ctx, "sqliteLocalCache.Delete", key, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteDocument, c.namespace, key); err != nil {
			return fmt.Errorf("%w: delete document: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, deleteDocumentMeta, c.namespace, key); err != nil {
			return fmt.Errorf("%w: delete document meta: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (c *sqliteLocalCache) List(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, listDocumentKeys, c.namespace)
	if err != nil {
		c.logger.Err(err).Str("func", "sqliteLocalCache.List").Msg("failed to list keys")
		return nil, fmt.Errorf("%w: list keys: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return keys, nil
}

func (c *sqliteLocalCache) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	if err := c.db.QueryRowContext(ctx, existsDocument, c.namespace, key).Scan(&exists); err != nil {
		c.logger.Err(err).Str("func", "sqliteLocalCache.Exists").Str("key", key).Msg("failed to check document")
		return false, fmt.Errorf("%w: exists %s: %w", ErrExecutingQuery, key, err)
	}

	return exists, nil
}

func (c *sqliteLocalCache) ClearAll(ctx context.Context) error {
	return c.inTx(ctx, "sqliteLocalCache.ClearAll", "", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, clearDocuments, c.namespace); err != nil {
			return fmt.Errorf("%w: clear documents: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, clearDocumentMeta, c.namespace); err != nil {
			return fmt.Errorf("%w: clear document meta: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func (c *sqliteLocalCache) Meta(ctx context.Context, key string) (*models.DocumentMeta, error) {
	var updatedAt int64
	err := c.db.QueryRowContext(ctx, selectDocumentMeta, c.namespace, key).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		c.logger.Err(err).Str("func", "sqliteLocalCache.Meta").Str("key", key).Msg("failed to read document meta")
		return nil, fmt.Errorf("%w: meta %s: %w", ErrExecutingQuery, key, err)
	}

	return &models.DocumentMeta{Key: key, UpdatedAt: time.UnixMilli(updatedAt)}, nil
}

// inTx runs fn in a transaction that is committed when fn succeeds and rolled
// back otherwise.
func (c *sqliteLocalCache) inTx(ctx context.Context, fn, key string, body func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		c.logger.Err(err).Str("func", fn).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = body(tx); err != nil {
		c.logger.Err(err).Str("func", fn).Str("key", key).Msg("statement failed")
		return err
	}

	if err = tx.Commit(); err != nil {
		c.logger.Err(err).Str("func", fn).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
