// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/service"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/models"
)

// Keys of the records kept in the session namespace of the local cache.
const (
	sessionRecordKey   = "session"
	tokenRecordKey     = "token"
	pendingRecordKey   = "pending"
	revisionsRecordKey = "revisions"
)

// ErrDocumentNotFound is returned by Get for a key with no local document.
var ErrDocumentNotFound = errors.New("document not found")

// App runs the client operations of one command line invocation.
type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	services *service.ClientServices
	password PasswordFunc
	out      io.Writer

	session *service.Repository[models.Session]
	token   *service.Repository[string]
	pending *service.Repository[[]string]

	// revisions keeps the revision tokens of the remote between runs.
	revisions *service.Repository[map[string]string]

	// remote is set once the sync engine talks to a remote.
	remote service.RemoteStore

	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, storages *store.ClientStorages, services *service.ClientServices, password PasswordFunc, out io.Writer, log *logger.Logger) *App {
	// Session records never leave the device: their document service runs
	// over an engine without a remote.
	records := service.NewDocumentService(storages.Session, service.NewSyncEngine(storages.Session, nil, log), log)

	return &App{
		cfg:       cfg,
		storages:  storages,
		services:  services,
		password:  password,
		out:       out,
		session:   service.NewRepository[models.Session](records, sessionRecordKey, nil),
		token:     service.NewRepository[string](records, tokenRecordKey, nil),
		pending:   service.NewRepository(records, pendingRecordKey, func() []string { return []string{} }),
		revisions: service.NewRepository(records, revisionsRecordKey, func() map[string]string { return map[string]string{} }),
		logger:    log,
	}
}

// Init creates a profile in owner/repo, stores the session on this device
// and uploads the documents already in the local cache.
func (a *App) Init(ctx context.Context, owner, repo string, profileData models.Document) error {
	if err := a.ensureLoggedOut(ctx); err != nil {
		return err
	}
	owner, repo = a.destination(owner, repo)

	target := a.cfg.Adapter
	target.Owner, target.Repo = owner, repo
	if !target.RemoteConfigured() {
		return fmt.Errorf("%w: API URL, token, owner and repo are required", service.ErrRemoteNotConfigured)
	}

	password, err := a.readPassword("New master password: ")
	if err != nil {
		return err
	}

	token := a.cfg.Adapter.Token
	session, creds, err := a.services.Profile.Create(ctx, password, owner, repo, token, profileData)
	if err != nil {
		return fmt.Errorf("error creating profile: %w", err)
	}
	if err = a.saveSession(ctx, session, creds, token); err != nil {
		return err
	}
	if err = a.attach(ctx, session, creds, token); err != nil {
		return err
	}

	if err = a.services.Sync.FullPush(ctx); err != nil {
		return err
	}
	keys, err := a.services.Documents.List(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "profile created in %s/%s\n", owner, repo)
	return a.finish(ctx, keys)
}

// Recover restores the session of an existing profile from its public
// bootstrap files and pulls every document.
func (a *App) Recover(ctx context.Context, owner, repo string) error {
	if err := a.ensureLoggedOut(ctx); err != nil {
		return err
	}
	owner, repo = a.destination(owner, repo)

	password, err := a.readPassword("Master password: ")
	if err != nil {
		return err
	}

	rec, err := a.services.Recovery.Recover(ctx, owner, repo, password)
	if err != nil {
		return fmt.Errorf("error recovering profile: %w", err)
	}
	if err = a.saveSession(ctx, rec.Session, rec.Credentials, rec.Token); err != nil {
		return err
	}
	if err = a.attach(ctx, rec.Session, rec.Credentials, rec.Token); err != nil {
		return err
	}

	if err = a.services.Sync.FullPull(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "profile %s/%s recovered\n", rec.Session.Owner, rec.Session.Repo)
	return a.finish(ctx, nil)
}

func (a *App) Get(ctx context.Context, key string) error {
	doc, err := a.services.Documents.Read(ctx, key)
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: %q", ErrDocumentNotFound, key)
	}

	fmt.Fprintln(a.out, string(doc))
	return nil
}

// Put writes doc locally and pushes it when a session exists.
func (a *App) Put(ctx context.Context, key string, doc models.Document) error {
	if err := a.openIfLoggedIn(ctx); err != nil {
		return err
	}
	if err := a.services.Documents.Write(ctx, key, doc); err != nil {
		return err
	}
	return a.finish(ctx, []string{key})
}

// Remove deletes key locally and from the remote when a session exists.
func (a *App) Remove(ctx context.Context, key string) error {
	if err := a.openIfLoggedIn(ctx); err != nil {
		return err
	}
	if err := a.services.Documents.Delete(ctx, key); err != nil {
		return err
	}
	return a.finish(ctx, []string{key})
}

func (a *App) List(ctx context.Context) error {
	keys, err := a.services.Documents.List(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Fprintln(a.out, key)
	}
	return nil
}

// Pull replaces local documents with the remote copies.
func (a *App) Pull(ctx context.Context) error {
	if err := a.openRemote(ctx); err != nil {
		return err
	}
	if err := a.services.Sync.FullPull(ctx); err != nil {
		return err
	}
	return a.finish(ctx, nil)
}

// Push uploads every local document.
func (a *App) Push(ctx context.Context) error {
	if err := a.openRemote(ctx); err != nil {
		return err
	}
	keys, err := a.services.Documents.List(ctx)
	if err != nil {
		return err
	}
	if err = a.services.Sync.FullPush(ctx); err != nil {
		return err
	}
	return a.finish(ctx, keys)
}

// Retry pushes the keys left pending by earlier invocations.
func (a *App) Retry(ctx context.Context) error {
	if err := a.openRemote(ctx); err != nil {
		return err
	}
	keys, err := a.pending.Load(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		// failures are collected by the engine and reported by finish
		_ = a.services.Sync.Push(ctx, key)
	}
	return a.finish(ctx, keys)
}

// Watch keeps retrying pending keys every interval until ctx is done,
// printing every state change.
func (a *App) Watch(ctx context.Context) error {
	if err := a.openRemote(ctx); err != nil {
		return err
	}

	unsubscribe := a.services.Sync.Subscribe(func(state models.SyncState) {
		fmt.Fprintln(a.out, formatState(state))
	})
	defer unsubscribe()

	keys, err := a.pending.Load(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		_ = a.services.Sync.Push(ctx, key)
	}

	a.services.SyncJob.Start(ctx, a.cfg.Workers.RetryInterval)
	<-ctx.Done()
	a.services.SyncJob.Stop()

	return a.finish(context.WithoutCancel(ctx), keys)
}

// Status prints the session, the local cache and the pending keys. It does
// not need the password.
func (a *App) Status(ctx context.Context) error {
	session, err := a.session.Load(ctx)
	if err != nil {
		return err
	}
	keys, err := a.services.Documents.List(ctx)
	if err != nil {
		return err
	}
	pending, err := a.pending.Load(ctx)
	if err != nil {
		return err
	}

	if session.Owner == "" {
		fmt.Fprintln(a.out, "profile:   none (local only)")
	} else {
		fmt.Fprintf(a.out, "profile:   %s/%s\n", session.Owner, session.Repo)
	}
	remote := a.cfg.Adapter.APIURL
	if remote == "" {
		remote = "not configured"
	}
	fmt.Fprintf(a.out, "remote:    %s\n", remote)
	fmt.Fprintf(a.out, "documents: %d\n", len(keys))
	fmt.Fprintln(a.out, formatState(models.SyncState{Status: statusOf(pending), FailedKeys: pending}))

	return nil
}

// Logout removes the session and every local document. Pending changes are
// lost, so it refuses to run while there are any unless force is set.
func (a *App) Logout(ctx context.Context, force bool) error {
	pending, err := a.pending.Load(ctx)
	if err != nil {
		return err
	}
	if len(pending) > 0 && !force {
		return fmt.Errorf("%w: %d pending change(s), run `retry` or use --force", ErrSyncFailed, len(pending))
	}

	if err = a.storages.Documents.ClearAll(ctx); err != nil {
		return fmt.Errorf("error clearing local documents: %w", err)
	}
	if err = a.storages.Session.ClearAll(ctx); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}

	fmt.Fprintln(a.out, "logged out")
	return nil
}

// openIfLoggedIn unlocks the session when there is one; without a session
// the app stays local only.
func (a *App) openIfLoggedIn(ctx context.Context) error {
	err := a.open(ctx)
	if errors.Is(err, ErrNotLoggedIn) {
		return nil
	}
	return err
}

// openRemote unlocks the session and requires a remote afterwards.
func (a *App) openRemote(ctx context.Context) error {
	if err := a.open(ctx); err != nil {
		return err
	}
	if a.remote == nil {
		return service.ErrRemoteNotConfigured
	}
	return nil
}

// open loads the session, checks the password and attaches the remote.
func (a *App) open(ctx context.Context) error {
	session, err := a.session.Load(ctx)
	if err != nil {
		return err
	}
	if session.Owner == "" {
		return ErrNotLoggedIn
	}

	password, err := a.readPassword("Master password: ")
	if err != nil {
		return err
	}
	creds, err := a.services.Profile.Unlock(session, password)
	if err != nil {
		return err
	}

	token := a.cfg.Adapter.Token
	if token == "" {
		encrypted, err := a.token.Load(ctx)
		if err != nil {
			return err
		}
		if encrypted != "" {
			if token, err = a.services.Crypto.Decrypt(encrypted, creds.Password, creds.Salt); err != nil {
				return fmt.Errorf("%w: stored access token: %w", service.ErrCorruptedDocument, err)
			}
		}
	}

	return a.attach(ctx, session, creds, token)
}

// attach connects the sync engine to the session's repository. Without an
// API URL or a token the app stays local only.
func (a *App) attach(ctx context.Context, session models.Session, creds models.Credentials, token string) error {
	if a.cfg.Adapter.APIURL == "" || token == "" {
		a.logger.Info().Msg("remote is not configured, running local only")
		return nil
	}

	remote, err := a.services.NewRemote(session.Owner, session.Repo, token, creds)
	if err != nil {
		return err
	}
	revisions, err := a.revisions.Load(ctx)
	if err != nil {
		return err
	}
	remote.RestoreRevisionTokens(revisions)

	a.services.Sync.SetRemote(remote)
	a.remote = remote

	return nil
}

func (a *App) saveSession(ctx context.Context, session models.Session, creds models.Credentials, token string) error {
	encrypted, err := a.services.Crypto.Encrypt(token, creds.Password, creds.Salt)
	if err != nil {
		return fmt.Errorf("error encrypting access token: %w", err)
	}
	if err = a.token.Save(ctx, encrypted); err != nil {
		return err
	}
	return a.session.Save(ctx, session)
}

// finish waits for the pushes of this invocation and records which keys
// remain pending: earlier pending keys not attempted now, the keys that
// failed now, and every attempted key when no remote was attached.
func (a *App) finish(ctx context.Context, attempted []string) error {
	a.services.Sync.Wait()
	state := a.services.Sync.State()

	previous, err := a.pending.Load(ctx)
	if err != nil {
		return err
	}

	var pending []string
	for _, key := range previous {
		if !slices.Contains(attempted, key) {
			pending = append(pending, key)
		}
	}
	pending = append(pending, state.FailedKeys...)
	if a.remote == nil {
		if session, err := a.session.Load(ctx); err == nil && session.Owner != "" {
			pending = append(pending, attempted...)
		}
	}
	slices.Sort(pending)
	pending = slices.Compact(pending)

	if len(pending) == 0 {
		err = a.pending.Delete(ctx)
	} else {
		err = a.pending.Save(ctx, pending)
	}
	if err != nil {
		return fmt.Errorf("error saving pending keys: %w", err)
	}

	if a.remote != nil {
		if err = a.revisions.Save(ctx, a.remote.RevisionTokens()); err != nil {
			return fmt.Errorf("error saving revision tokens: %w", err)
		}
	}

	return syncError(state.FailedKeys)
}

func (a *App) ensureLoggedOut(ctx context.Context) error {
	session, err := a.session.Load(ctx)
	if err != nil {
		return err
	}
	if session.Owner != "" {
		return ErrAlreadyLoggedIn
	}
	return nil
}

// destination falls back to the configured owner and repository.
func (a *App) destination(owner, repo string) (string, string) {
	if owner == "" {
		owner = a.cfg.Adapter.Owner
	}
	if repo == "" {
		repo = a.cfg.Adapter.Repo
	}
	return owner, repo
}

func (a *App) readPassword(prompt string) (string, error) {
	password, err := a.password(prompt)
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	if password == "" {
		return "", errEmptyPassword
	}
	return password, nil
}

func statusOf(pending []string) models.SyncStatus {
	if len(pending) > 0 {
		return models.SyncStatusError
	}
	return models.SyncStatusIdle
}

func formatState(state models.SyncState) string {
	if len(state.FailedKeys) == 0 {
		return fmt.Sprintf("sync:      %s", state.Status)
	}
	return fmt.Sprintf("sync:      %s (pending: %v)", state.Status, state.FailedKeys)
}
