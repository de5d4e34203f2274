// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/models"
)

// notice is one state transition together with the subscribers registered
// when it happened.
type notice struct {
	state models.SyncState
	subs  []func(models.SyncState)
}

// pushSlot is the queue entry of a key with a running push worker. dirty is
// set when another push was requested while the worker was busy.
type pushSlot struct {
	dirty bool
}

// syncEngine is the SyncEngine implementation.
//
// Status is derived from the number of operations in flight: the engine is
// syncing while at least one runs, and settles to error or idle when the
// last one finishes.
type syncEngine struct {
	local store.LocalCache

	remoteMu sync.RWMutex
	remote   RemoteStore

	// keys serialises pushes and pulls of the same key.
	keys keyLocks

	queueMu sync.Mutex
	queue   map[string]*pushSlot
	workers sync.WaitGroup

	stateMu  sync.Mutex
	status   models.SyncStatus
	failed   map[string]struct{}
	inFlight int
	// opFailed remembers failures of operations that do not feed the failed
	// key set (pull, listings) until the engine settles.
	opFailed bool
	subs     map[uint64]func(models.SyncState)
	nextSub  uint64

	// notices holds transitions not yet delivered, in transition order. It is
	// guarded by stateMu; deliverMu lets one goroutine at a time drain it.
	notices   []notice
	deliverMu sync.Mutex

	logger *logger.Logger
}

// NewSyncEngine returns an engine over local. remote may be nil, in which
// case every sync operation is a no-op until SetRemote is called.
func NewSyncEngine(local store.LocalCache, remote RemoteStore, log *logger.Logger) SyncEngine {
	return &syncEngine{
		local:  local,
		remote: remote,
		queue:  make(map[string]*pushSlot),
		status: models.SyncStatusIdle,
		failed: make(map[string]struct{}),
		subs:   make(map[uint64]func(models.SyncState)),
		logger: log,
	}
}

func (e *syncEngine) PushKey(ctx context.Context, key string) {
	if e.currentRemote() == nil {
		return
	}

	e.queueMu.Lock()
	if slot, ok := e.queue[key]; ok {
		slot.dirty = true
		e.queueMu.Unlock()
		return
	}
	e.queue[key] = &pushSlot{}
	e.workers.Add(1)
	e.queueMu.Unlock()

	go e.drain(context.WithoutCancel(ctx), key)
}

// drain pushes key until no further push was requested for it.
func (e *syncEngine) drain(ctx context.Context, key string) {
	defer e.workers.Done()

	for {
		_ = e.Push(ctx, key)

		e.queueMu.Lock()
		slot := e.queue[key]
		if !slot.dirty {
			delete(e.queue, key)
			e.queueMu.Unlock()
			return
		}
		slot.dirty = false
		e.queueMu.Unlock()
	}
}

func (e *syncEngine) Push(ctx context.Context, key string) error {
	remote := e.currentRemote()
	if remote == nil {
		return nil
	}

	e.begin()
	err := e.pushLocked(ctx, remote, key)
	e.recordPush(key, err)
	e.end(err != nil)

	return err
}

func (e *syncEngine) RetryFailed(ctx context.Context) {
	remote := e.currentRemote()
	if remote == nil {
		return
	}

	keys := e.failedKeys()
	if len(keys) == 0 {
		return
	}

	e.begin()
	for _, key := range keys {
		if ctx.Err() != nil {
			break
		}
		e.recordPush(key, e.pushLocked(ctx, remote, key))
	}
	e.end(false)
}

func (e *syncEngine) FullPull(ctx context.Context) error {
	remote := e.currentRemote()
	if remote == nil {
		return nil
	}

	e.begin()
	keys, err := remote.List(ctx)
	if err != nil {
		e.end(true)
		return fmt.Errorf("error listing remote documents: %w", err)
	}

	failures := 0
	for _, key := range keys {
		if err = e.pullLocked(ctx, remote, key); err != nil {
			failures++
			e.logger.WithKey(key).Err(err).Str("func", "syncEngine.FullPull").Msg("pull failed")
		}
	}
	e.end(failures > 0)

	e.logger.Debug().Int("keys", len(keys)).Int("failures", failures).Msg("full pull finished")
	return nil
}

func (e *syncEngine) FullPush(ctx context.Context) error {
	remote := e.currentRemote()
	if remote == nil {
		return nil
	}

	e.begin()
	// Listing the remote first primes the revision tokens, so existing
	// documents are overwritten instead of rejected as conflicting creates.
	if _, err := remote.List(ctx); err != nil {
		e.end(true)
		return fmt.Errorf("error listing remote documents: %w", err)
	}

	keys, err := e.local.List(ctx)
	if err != nil {
		e.end(true)
		return fmt.Errorf("error listing local documents: %w", err)
	}

	for _, key := range keys {
		e.recordPush(key, e.pushLocked(ctx, remote, key))
	}
	e.end(false)

	return nil
}

func (e *syncEngine) State() models.SyncState {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.snapshot()
}

func (e *syncEngine) Subscribe(fn func(models.SyncState)) func() {
	e.stateMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.stateMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.stateMu.Lock()
			delete(e.subs, id)
			e.stateMu.Unlock()
		})
	}
}

func (e *syncEngine) Wait() {
	e.workers.Wait()
}

func (e *syncEngine) SetRemote(remote RemoteStore) {
	e.remoteMu.Lock()
	e.remote = remote
	e.remoteMu.Unlock()

	e.stateMu.Lock()
	clear(e.failed)
	changed := e.inFlight == 0 && e.status != models.SyncStatusIdle
	if changed {
		e.status = models.SyncStatusIdle
		e.opFailed = false
		e.enqueueNotice()
	}
	e.stateMu.Unlock()

	e.deliver()
}

// pushLocked mirrors the local copy of key to remote. A key without a local
// document is deleted remotely.
func (e *syncEngine) pushLocked(ctx context.Context, remote RemoteStore, key string) error {
	unlock := e.keys.lock(key)
	defer unlock()

	doc, err := e.local.Read(ctx, key)
	if err != nil {
		return fmt.Errorf("error reading local %q: %w", key, err)
	}

	if doc == nil {
		return remote.Delete(ctx, key)
	}
	return remote.Write(ctx, key, doc)
}

// pullLocked replaces the local copy of key with the remote one. Remote
// documents that vanished or could not be decrypted are left alone locally.
func (e *syncEngine) pullLocked(ctx context.Context, remote RemoteStore, key string) error {
	unlock := e.keys.lock(key)
	defer unlock()

	doc, err := remote.Read(ctx, key)
	if err != nil {
		return err
	}
	if doc == nil {
		return nil
	}

	if err = e.local.Write(ctx, key, doc); err != nil {
		return fmt.Errorf("error writing local %q: %w", key, err)
	}
	return nil
}

func (e *syncEngine) currentRemote() RemoteStore {
	e.remoteMu.RLock()
	defer e.remoteMu.RUnlock()
	return e.remote
}

func (e *syncEngine) failedKeys() []string {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.sortedFailed()
}

// recordPush updates the failed key set with the outcome of one push.
func (e *syncEngine) recordPush(key string, err error) {
	if err != nil {
		e.logger.WithKey(key).Err(err).Str("func", "syncEngine.push").Msg("push failed")
	}

	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	if err != nil {
		e.failed[key] = struct{}{}
		return
	}
	delete(e.failed, key)
}

// begin registers an operation and switches to syncing.
func (e *syncEngine) begin() {
	e.stateMu.Lock()
	e.inFlight++
	if e.status != models.SyncStatusSyncing {
		e.status = models.SyncStatusSyncing
		e.enqueueNotice()
	}
	e.stateMu.Unlock()

	e.deliver()
}

// end completes an operation. The last operation to finish settles the
// status.
func (e *syncEngine) end(failed bool) {
	e.stateMu.Lock()
	e.inFlight--
	if failed {
		e.opFailed = true
	}
	if e.inFlight > 0 {
		e.stateMu.Unlock()
		return
	}

	e.status = models.SyncStatusIdle
	if e.opFailed || len(e.failed) > 0 {
		e.status = models.SyncStatusError
	}
	e.opFailed = false
	e.enqueueNotice()
	e.stateMu.Unlock()

	e.deliver()
}

// snapshot must be called with stateMu held.
func (e *syncEngine) snapshot() models.SyncState {
	return models.SyncState{Status: e.status, FailedKeys: e.sortedFailed()}
}

func (e *syncEngine) sortedFailed() []string {
	keys := make([]string, 0, len(e.failed))
	for key := range e.failed {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// enqueueNotice records the current state for delivery. Must be called with
// stateMu held, right at the transition.
func (e *syncEngine) enqueueNotice() {
	subs := make([]func(models.SyncState), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.notices = append(e.notices, notice{state: e.snapshot(), subs: subs})
}

// deliver hands queued transitions to subscribers in the order they
// happened. It runs on the goroutine that caused a transition and returns
// only once that transition has been delivered, possibly by another
// goroutine that was already draining the queue. stateMu is not held while
// subscribers run, so they may read the engine state.
func (e *syncEngine) deliver() {
	e.deliverMu.Lock()
	defer e.deliverMu.Unlock()

	for {
		e.stateMu.Lock()
		if len(e.notices) == 0 {
			e.stateMu.Unlock()
			return
		}
		n := e.notices[0]
		e.notices[0] = notice{}
		e.notices = e.notices[1:]
		e.stateMu.Unlock()

		for _, fn := range n.subs {
			fn(n.state)
		}
	}
}
