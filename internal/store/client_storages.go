// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
)

// SessionNamespace is the namespace of the cache that keeps the local
// session record. It is separate from the document namespace so that
// clearing documents never logs the user out.
const SessionNamespace = "session"

// ClientStorages groups the client-side caches and owns the database handle
// behind them.
type ClientStorages struct {
	// Documents caches the user's documents.
	Documents LocalCache

	// Session keeps the local session record.
	Session LocalCache

	closer io.Closer
}

// NewClientStorages opens the local cache selected by cfg.Local.Driver:
//   - sqlite: opens (creating when needed) the file and runs migrations;
//   - bolt: opens (creating when needed) the bbolt file;
//   - memory: keeps everything in process memory.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("driver", cfg.Local.Driver).Msg("creating new storages...")

	switch cfg.Local.Driver {
	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.Local.Path, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return &ClientStorages{
			Documents: NewSQLiteLocalCache(db, cfg.Local.Namespace, log),
			Session:   NewSQLiteLocalCache(db, SessionNamespace, log),
			closer:    db,
		}, nil

	case config.DriverBolt:
		db, err := OpenBoltDB(cfg.Local.Path)
		if err != nil {
			return nil, err
		}
		return &ClientStorages{
			Documents: NewBoltLocalCache(db, cfg.Local.Namespace, log),
			Session:   NewBoltLocalCache(db, SessionNamespace, log),
			closer:    db,
		}, nil

	case config.DriverMemory:
		backend := NewMemoryBackend()
		return &ClientStorages{
			Documents: NewMemoryLocalCache(backend, cfg.Local.Namespace),
			Session:   NewMemoryLocalCache(backend, SessionNamespace),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Local.Driver)
	}
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
