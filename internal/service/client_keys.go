// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"strings"
	"sync"
)

const (
	remoteDataDir = "data"
	remoteDocExt  = ".json"

	profileKey = "profile"
	authKey    = "auth.enc"
)

var (
	profilePath = documentPath(profileKey)
	authPath    = documentPath(authKey)
)

// documentPath maps a logical key to its remote path: data/{key}.json.
func documentPath(key string) string {
	return remoteDataDir + "/" + key + remoteDocExt
}

// documentKey is the inverse of documentPath for a bare file name.
func documentKey(name string) (string, bool) {
	if !strings.HasSuffix(name, remoteDocExt) {
		return "", false
	}
	key := strings.TrimSuffix(name, remoteDocExt)
	return key, key != ""
}

// ValidateKey rejects keys that cannot be stored as a single file under
// data/ or that collide with the bootstrap files.
func ValidateKey(key string) error {
	switch {
	case key == "", strings.TrimSpace(key) != key:
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	case strings.ContainsAny(key, `/\`), key == ".", key == "..":
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidKey, key)
	case key == profileKey, key == authKey:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidKey, key)
	}
	return nil
}

// keyLocks hands out one mutex per key. Locks are never released from the
// map; the number of keys a user owns is small and bounded.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the mutex of key and returns its unlock function.
func (k *keyLocks) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
