// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/crypto"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
	"github.com/MKhiriev/go-track-keeper/models"
)

// fakeRemote is an in-memory content store with the same revision semantics
// as the HTTP one: creates fail on existing files, updates and deletes fail
// on a stale token. It also serves the public raw path.
type fakeRemote struct {
	mu    sync.Mutex
	files map[string]string

	// failPuts makes the next n PutFile calls fail with putErr.
	failPuts int
	putErr   error
	puts     int
}

var (
	_ adapter.RemoteFileClient = (*fakeRemote)(nil)
	_ adapter.PublicFileReader = (*fakeRemote)(nil)
)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{files: make(map[string]string)}
}

func (f *fakeRemote) GetFile(_ context.Context, p string) (*models.RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, ok := f.files[p]
	if !ok {
		return nil, nil
	}
	return &models.RemoteFile{
		Name:          path.Base(p),
		Path:          p,
		Content:       content,
		RevisionToken: utils.BlobSHA([]byte(content)),
	}, nil
}

func (f *fakeRemote) PutFile(_ context.Context, p, content, revisionToken, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.puts++
	if f.failPuts > 0 {
		f.failPuts--
		return "", f.putErr
	}

	current, ok := f.files[p]
	switch {
	case revisionToken == "" && ok:
		return "", fmt.Errorf("%w: %s already exists", adapter.ErrConflict, p)
	case revisionToken != "" && (!ok || utils.BlobSHA([]byte(current)) != revisionToken):
		return "", fmt.Errorf("%w: %s is stale", adapter.ErrConflict, p)
	}

	f.files[p] = content
	return utils.BlobSHA([]byte(content)), nil
}

func (f *fakeRemote) DeleteFile(_ context.Context, p, revisionToken, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.files[p]
	if !ok {
		return adapter.ErrNotFound
	}
	if utils.BlobSHA([]byte(current)) != revisionToken {
		return adapter.ErrConflict
	}
	delete(f.files, p)
	return nil
}

func (f *fakeRemote) ListFiles(_ context.Context, prefix string) ([]models.RemoteFileEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var entries []models.RemoteFileEntry
	for p, content := range f.files {
		rel, ok := strings.CutPrefix(p, prefix+"/")
		if !ok || strings.Contains(rel, "/") {
			continue
		}
		entries = append(entries, models.RemoteFileEntry{
			Name:          rel,
			Path:          p,
			RevisionToken: utils.BlobSHA([]byte(content)),
			Type:          "file",
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (f *fakeRemote) GetUser(context.Context) (models.RemoteUser, error) {
	return models.RemoteUser{Login: "octo"}, nil
}

func (f *fakeRemote) GetRepo(context.Context) (models.RemoteRepo, error) {
	return models.RemoteRepo{FullName: "octo/tracker", Private: true, DefaultBranch: "main"}, nil
}

func (f *fakeRemote) FetchPublic(_ context.Context, _, _, p string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, ok := f.files[p]
	if !ok {
		return nil, nil
	}
	return []byte(content), nil
}

func (f *fakeRemote) failNextPuts(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPuts = n
	f.putErr = err
}

func (f *fakeRemote) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

func (f *fakeRemote) raw(p string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.files[p]
	return content, ok
}

func (f *fakeRemote) setRaw(p, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[p] = content
}

// blockingRemote is a RemoteStore whose writes wait for release. It records
// every written document.
type blockingRemote struct {
	RemoteStore

	started chan string
	release chan struct{}

	mu     sync.Mutex
	writes []string
}

func newBlockingRemote() *blockingRemote {
	return &blockingRemote{
		started: make(chan string, 16),
		release: make(chan struct{}),
	}
}

func (b *blockingRemote) Write(_ context.Context, key string, doc models.Document) error {
	b.started <- key
	<-b.release

	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes = append(b.writes, string(doc))
	return nil
}

func (b *blockingRemote) written() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.writes...)
}

var testCreds = models.Credentials{Password: "correct horse", Salt: "c2FsdHNhbHRzYWx0c2FsdA=="}

func newTestCrypto() crypto.CryptoService {
	return crypto.NewCryptoService(crypto.WithIterations(1000))
}

func newTestLocal() store.LocalCache {
	return store.NewMemoryLocalCache(store.NewMemoryBackend(), "default")
}

func newTestRemoteStore(t *testing.T, client adapter.RemoteFileClient, opts ...RemoteStoreOption) RemoteStore {
	t.Helper()
	return NewRemoteStore(client, newTestCrypto(), testCreds, logger.Nop(), opts...)
}
