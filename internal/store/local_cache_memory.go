// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-track-keeper/models"
)

// MemoryBackend is the shared state behind in-memory caches. Caches created
// over the same backend with different namespaces do not see each other's
// keys.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
	meta map[string]map[string]time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		docs: make(map[string]map[string][]byte),
		meta: make(map[string]map[string]time.Time),
	}
}

type memoryLocalCache struct {
	backend   *MemoryBackend
	namespace string
	now       func() time.Time
}

// NewMemoryLocalCache returns a [LocalCache] scoped to namespace. A nil
// backend gets a private one.
func NewMemoryLocalCache(backend *MemoryBackend, namespace string) LocalCache {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &memoryLocalCache{backend: backend, namespace: namespace, now: time.Now}
}

func (c *memoryLocalCache) Read(_ context.Context, key string) (models.Document, error) {
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()

	v, ok := c.backend.docs[c.namespace][key]
	if !ok {
		return nil, nil
	}
	return bytes.Clone(v), nil
}

func (c *memoryLocalCache) Write(_ context.Context, key string, doc models.Document) error {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()

	if c.backend.docs[c.namespace] == nil {
		c.backend.docs[c.namespace] = make(map[string][]byte)
		c.backend.meta[c.namespace] = make(map[string]time.Time)
	}
	c.backend.docs[c.namespace][key] = bytes.Clone(doc)
	c.backend.meta[c.namespace][key] = c.now()
	return nil
}

func (c *memoryLocalCache) Delete(_ context.Context, key string) error {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()

	delete(c.backend.docs[c.namespace], key)
	delete(c.backend.meta[c.namespace], key)
	return nil
}

func (c *memoryLocalCache) List(_ context.Context) ([]string, error) {
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()

	keys := make([]string, 0, len(c.backend.docs[c.namespace]))
	for k := range c.backend.docs[c.namespace] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (c *memoryLocalCache) Exists(_ context.Context, key string) (bool, error) {
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()

	_, ok := c.backend.docs[c.namespace][key]
	return ok, nil
}

func (c *memoryLocalCache) ClearAll(_ context.Context) error {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()

	delete(c.backend.docs, c.namespace)
	delete(c.backend.meta, c.namespace)
	return nil
}

func (c *memoryLocalCache) Meta(_ context.Context, key string) (*models.DocumentMeta, error) {
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()

	t, ok := c.backend.meta[c.namespace][key]
	if !ok {
		return nil, nil
	}
	return &models.DocumentMeta{Key: key, UpdatedAt: t}, nil
}
