// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// StoredFile is a file persisted by the development file server.
type StoredFile struct {
	Owner   string
	Repo    string
	Path    string
	Content []byte

	// SHA is the git blob id of Content and doubles as the revision token.
	SHA       string
	UpdatedAt time.Time
}
