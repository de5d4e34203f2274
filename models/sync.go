// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncStatus is the coarse state of the sync engine.
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusError   SyncStatus = "error"
)

// SyncState is the snapshot broadcast to sync subscribers.
type SyncState struct {
	Status SyncStatus `json:"status"`

	// FailedKeys lists, in lexical order, the keys whose last push failed.
	FailedKeys []string `json:"failed_keys"`
}
