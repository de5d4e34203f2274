// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/crypto"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/models"
)

// ClientServices is the storage core of the client, wired over the local
// caches. The engine starts in local-only mode; the caller attaches a
// RemoteStore with SetRemote once the user is unlocked.
type ClientServices struct {
	Crypto    crypto.CryptoService
	Documents DocumentService
	Sync      SyncEngine
	SyncJob   SyncJob
	Profile   ProfileService
	Recovery  RecoveryService

	// NewRemote builds RemoteStores for the configured transport.
	NewRemote RemoteStoreFactory
}

func NewClientServices(storages *store.ClientStorages, cryptoService crypto.CryptoService, public adapter.PublicFileReader, newRemote RemoteStoreFactory, log *logger.Logger) *ClientServices {
	engine := NewSyncEngine(storages.Documents, nil, log)

	return &ClientServices{
		Crypto:    cryptoService,
		Documents: NewDocumentService(storages.Documents, engine, log),
		Sync:      engine,
		SyncJob:   NewSyncJob(engine),
		Profile:   NewProfileService(cryptoService, newRemote, log),
		Recovery:  NewRecoveryService(public, cryptoService, log),
		NewRemote: newRemote,
	}
}

// NewRemoteStoreFactory returns a factory that connects an HTTP
// RemoteFileClient per destination, based on cfg. Corrupted documents are
// reported to onCorruption when it is not nil.
func NewRemoteStoreFactory(cfg config.ClientAdapter, cryptoService crypto.CryptoService, onCorruption CorruptionHandler, log *logger.Logger) RemoteStoreFactory {
	return func(owner, repo, token string, creds models.Credentials) (RemoteStore, error) {
		destination := cfg
		destination.Owner = owner
		destination.Repo = repo
		destination.Token = token

		client, err := adapter.NewHTTPRemoteFileClient(destination, log)
		if err != nil {
			return nil, fmt.Errorf("error creating remote file client: %w", err)
		}

		var opts []RemoteStoreOption
		if onCorruption != nil {
			opts = append(opts, WithCorruptionHandler(onCorruption))
		}
		return NewRemoteStore(client, cryptoService, creds, log, opts...), nil
	}
}
