// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-track-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalCache is the on-device key to document store. It is the fast,
// unencrypted mirror of the user's data. Every cache is scoped to a
// namespace and never touches keys outside of it.
type LocalCache interface {
	// Read returns the stored document, or (nil, nil) when key is absent.
	Read(ctx context.Context, key string) (models.Document, error)

	// Write stores doc under key and stamps the metadata record of key in
	// the same transaction.
	Write(ctx context.Context, key string, doc models.Document) error

	// Delete removes the document and its metadata. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all keys of the namespace in ascending order.
	List(ctx context.Context) ([]string, error)

	Exists(ctx context.Context, key string) (bool, error)

	// ClearAll removes every document and metadata record of the namespace.
	ClearAll(ctx context.Context) error

	// Meta returns the metadata record of key, or (nil, nil) when absent.
	Meta(ctx context.Context, key string) (*models.DocumentMeta, error)
}

// FileRepository persists the files served by the development file server.
type FileRepository interface {
	// GetFile returns the file at path, or [ErrFileNotFound].
	GetFile(ctx context.Context, owner, repo, path string) (models.StoredFile, error)

	// ListFiles returns every file whose path starts with prefix + "/", or
	// all files of the repository when prefix is empty.
	ListFiles(ctx context.Context, owner, repo, prefix string) ([]models.StoredFile, error)

	// CreateFile inserts a new file. Returns [ErrFileAlreadyExists] when the
	// path is taken.
	CreateFile(ctx context.Context, file models.StoredFile) error

	// UpdateFile replaces the content of an existing file whose current SHA
	// equals expectedSHA. Returns [ErrRevisionConflict] on a SHA mismatch
	// and [ErrFileNotFound] when the path does not exist.
	UpdateFile(ctx context.Context, file models.StoredFile, expectedSHA string) error

	// DeleteFile removes the file whose current SHA equals expectedSHA, with
	// the same error contract as UpdateFile.
	DeleteFile(ctx context.Context, owner, repo, path, expectedSHA string) error
}
