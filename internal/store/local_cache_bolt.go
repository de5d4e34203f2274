// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/models"
	"go.etcd.io/bbolt"
)

// OpenBoltDB opens or creates the bbolt database at path. The parent
// directory is created if it does not exist.
func OpenBoltDB(path string) (*bbolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("bolt: create directory: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bolt: open db: %w", err)
	}
	return db, nil
}

// boltLocalCache keeps a namespace in two buckets: "documents:<ns>" maps
// key to body and "meta:<ns>" maps key to the big-endian unix milli time of
// the last write.
type boltLocalCache struct {
	db         *bbolt.DB
	docsBucket []byte
	metaBucket []byte
	now        func() time.Time
	logger     *logger.Logger
}

// NewBoltLocalCache returns a [LocalCache] scoped to namespace. The database
// handle is owned by the caller.
func NewBoltLocalCache(db *bbolt.DB, namespace string, log *logger.Logger) LocalCache {
	return &boltLocalCache{
		db:         db,
		docsBucket: []byte("documents:" + namespace),
		metaBucket: []byte("meta:" + namespace),
		now:        time.Now,
		logger:     log,
	}
}

func (c *boltLocalCache) Read(_ context.Context, key string) (models.Document, error) {
	var doc models.Document
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.docsBucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			doc = bytes.Clone(v)
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "boltLocalCache.Read").Str("key", key).Msg("failed to read document")
		return nil, fmt.Errorf("bolt: read %s: %w", key, err)
	}

	return doc, nil
}

func (c *boltLocalCache) Write(_ context.Context, key string, doc models.Document) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		docs, err := tx.CreateBucketIfNotExists(c.docsBucket)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", c.docsBucket, err)
		}
		meta, err := tx.CreateBucketIfNotExists(c.metaBucket)
		if err != nil {
			return fmt.Errorf("create bucket %q: %w", c.metaBucket, err)
		}

		if err = docs.Put([]byte(key), doc); err != nil {
			return fmt.Errorf("put document: %w", err)
		}
		if err = meta.Put([]byte(key), encodeMillis(c.now())); err != nil {
			return fmt.Errorf("put document meta: %w", err)
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "boltLocalCache.Write").Str("key", key).Msg("failed to write document")
		return fmt.Errorf("bolt: write %s: %w", key, err)
	}

	return nil
}

func (c *boltLocalCache) Delete(_ context.Context, key string) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{c.docsBucket, c.metaBucket} {
			b := tx.Bucket(name)
			if b == nil {
				continue
			}
			if err := b.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete from %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "boltLocalCache.Delete").Str("key", key).Msg("failed to delete document")
		return fmt.Errorf("bolt: delete %s: %w", key, err)
	}

	return nil
}

func (c *boltLocalCache) List(_ context.Context) ([]string, error) {
	keys := make([]string, 0)
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.docsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: list: %w", err)
	}

	return keys, nil
}

func (c *boltLocalCache) Exists(ctx context.Context, key string) (bool, error) {
	doc, err := c.Read(ctx, key)
	if err != nil {
		return false, err
	}
	return doc != nil, nil
}

func (c *boltLocalCache) ClearAll(_ context.Context) error {
	err := c.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{c.docsBucket, c.metaBucket} {
			if tx.Bucket(name) == nil {
				continue
			}
			if err := tx.DeleteBucket(name); err != nil {
				return fmt.Errorf("delete bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "boltLocalCache.ClearAll").Msg("failed to clear namespace")
		return fmt.Errorf("bolt: clear: %w", err)
	}

	return nil
}

func (c *boltLocalCache) Meta(_ context.Context, key string) (*models.DocumentMeta, error) {
	var meta *models.DocumentMeta
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(c.metaBucket)
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		if len(v) != 8 {
			return fmt.Errorf("malformed meta record of %s", key)
		}
		meta = &models.DocumentMeta{Key: key, UpdatedAt: time.UnixMilli(int64(binary.BigEndian.Uint64(v)))}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bolt: meta %s: %w", key, err)
	}

	return meta, nil
}

func encodeMillis(t time.Time) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t.UnixMilli()))
	return b
}
