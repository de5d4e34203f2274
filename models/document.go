// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the value types shared by the storage core, the
// client CLI and the development file server.
package models

import (
	"encoding/json"
	"time"
)

// Document is an opaque JSON value identified by a logical key
// (e.g. "daily-log", "streaks"). The storage core never inspects its
// structure; each DAO defines its own document shape and default value.
type Document = json.RawMessage

// DocumentMeta is the observability record kept next to every locally
// cached document. It is written together with the document and removed
// together with it.
type DocumentMeta struct {
	// Key is the logical document key.
	Key string `json:"key"`

	// UpdatedAt is the time of the last local write of the document.
	UpdatedAt time.Time `json:"updated_at"`
}
