// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-track-keeper/models"
)

// RemoteStore is the encrypted view of the remote content store. Documents
// are JSON-encoded, encrypted with the session credentials and stored at
// data/{key}.json.
type RemoteStore interface {
	// Read fetches and decrypts the document stored under key. A missing
	// document and a corrupted one both yield (nil, nil); corruption is
	// reported to the store's CorruptionHandler. Transport errors propagate.
	Read(ctx context.Context, key string) (models.Document, error)

	// Write encrypts doc and stores it under key, presenting the last
	// revision token seen for key. A stale token surfaces adapter.ErrConflict.
	Write(ctx context.Context, key string, doc models.Document) error

	// Delete removes key from the remote. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all generic documents, excluding the profile
	// and auth bootstrap files.
	List(ctx context.Context) ([]string, error)

	Exists(ctx context.Context, key string) (bool, error)

	// ReadProfile reads data/profile.json and decrypts its opaque part.
	// Returns (nil, nil) when no profile exists.
	ReadProfile(ctx context.Context) (*models.Profile, error)

	// WriteProfile encrypts the opaque part of profile and stores the
	// envelope. Plaintext fields are written as-is.
	WriteProfile(ctx context.Context, profile models.Profile) error

	// ReadAuth returns the auth envelope, or (nil, nil) when absent.
	ReadAuth(ctx context.Context) (*models.AuthEnvelope, error)

	WriteAuth(ctx context.Context, envelope models.AuthEnvelope) error

	// RevisionTokens returns a copy of the revision-token cache, keyed by
	// remote path. Short-lived processes persist it between runs.
	RevisionTokens() map[string]string

	// RestoreRevisionTokens seeds the cache with tokens saved by
	// RevisionTokens. Paths already cached keep their token.
	RestoreRevisionTokens(tokens map[string]string)
}

// SyncEngine reconciles the local cache with a RemoteStore and tracks the
// keys whose last push failed.
type SyncEngine interface {
	// PushKey schedules a push of key and returns immediately. Pushes of the
	// same key are serialised; pushes requested while one is running collapse
	// into a single follow-up. A no-op without a remote.
	PushKey(ctx context.Context, key string)

	// Push pushes key and waits for the result. The failure is also recorded
	// in the failed key set.
	Push(ctx context.Context, key string) error

	// RetryFailed pushes every key of a snapshot of the failed key set.
	RetryFailed(ctx context.Context)

	// FullPull overwrites the local copy of every remote document. Returns an
	// error only when the remote listing fails.
	FullPull(ctx context.Context) error

	// FullPush overwrites the remote copy of every local document. Returns an
	// error only when a listing fails.
	FullPush(ctx context.Context) error

	// State returns the current status snapshot.
	State() models.SyncState

	// Subscribe registers fn for every state transition and returns its
	// unsubscribe function. Unsubscribing twice is a no-op.
	//
	// fn runs synchronously on a goroutine of a sync operation (a PushKey
	// worker, or the caller of Push, RetryFailed, FullPull, FullPush or
	// SetRemote); an operation returns only after its own transitions were
	// delivered. Calls are never concurrent and arrive in transition order,
	// so the last state seen is the current one. fn may call State but must
	// not start sync operations.
	Subscribe(fn func(models.SyncState)) (unsubscribe func())

	// Wait blocks until all scheduled pushes have finished.
	Wait()

	// SetRemote switches the engine to remote (nil switches to local-only
	// mode). The failed key set is cleared.
	SetRemote(remote RemoteStore)
}

// SyncJob periodically drives SyncEngine.RetryFailed.
type SyncJob interface {
	// Start launches the retry loop, stopping any previous one. A
	// non-positive interval falls back to one minute.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the loop and waits for it to exit.
	Stop()
}

// DocumentService is the storage contract every DAO is written against.
// Writes and deletes complete locally before a push is scheduled.
type DocumentService interface {
	Read(ctx context.Context, key string) (models.Document, error)
	Write(ctx context.Context, key string, doc models.Document) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// ProfileService bootstraps a new account on the remote store and unlocks
// existing local sessions.
type ProfileService interface {
	// Create generates the data salt and the password verifier, stores the
	// access token encrypted under the password in data/auth.enc.json and
	// writes data/profile.json.
	Create(ctx context.Context, password, owner, repo, token string, data models.Document) (models.Session, models.Credentials, error)

	// Verify checks password against the offline verifier of session.
	Verify(session models.Session, password string) bool

	// Unlock verifies password and returns the credentials of session, or
	// ErrWrongPassword.
	Unlock(session models.Session, password string) (models.Credentials, error)
}

// RecoveryService restores access on a fresh device from the public
// bootstrap files and the password alone.
type RecoveryService interface {
	Recover(ctx context.Context, owner, repo, password string) (models.Recovery, error)
}
