// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport-layer client for the remote content
// store that mirrors the user's encrypted documents.
//
// The remote store is addressed by path and versions every file with a
// revision token (a content SHA). [RemoteFileClient] is the authenticated
// read/write client; [PublicFileReader] is the unauthenticated read path used
// during password recovery, before any credential is available.
//
// Transport failures are surfaced as *[RemoteError] values that unwrap to the
// sentinels in errors.go, so callers can use [errors.Is] regardless of the
// concrete status code (e.g. [ErrConflict] for 409 and 422).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-track-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_file_client_mock.go -package=mock

// RemoteFileClient is a generic authenticated file-store client over a path
// namespace.
type RemoteFileClient interface {
	// GetFile fetches the file at path. A missing file is reported as
	// (nil, nil), not as an error.
	GetFile(ctx context.Context, path string) (*models.RemoteFile, error)

	// PutFile writes content to path and returns the new revision token.
	// With a non-empty revisionToken the write is an optimistic update that
	// fails with [ErrConflict] when the token is stale. With an empty token it
	// is a create that fails with [ErrConflict] if the file already exists.
	PutFile(ctx context.Context, path, content, revisionToken, message string) (string, error)

	// DeleteFile removes the file at path. revisionToken must be current.
	DeleteFile(ctx context.Context, path, revisionToken, message string) error

	// ListFiles lists the files directly under prefix. A missing directory
	// yields an empty list.
	ListFiles(ctx context.Context, prefix string) ([]models.RemoteFileEntry, error)

	// GetUser returns the identity the configured credential belongs to.
	// Used during setup and recovery only.
	GetUser(ctx context.Context) (models.RemoteUser, error)

	// GetRepo returns the configured destination. Used during setup and
	// recovery only.
	GetRepo(ctx context.Context) (models.RemoteRepo, error)
}

// PublicFileReader reads files from the public raw path of a destination
// without any credential.
type PublicFileReader interface {
	// FetchPublic returns the raw bytes of path in owner/repo. A missing file
	// is reported as (nil, nil).
	FetchPublic(ctx context.Context, owner, repo, path string) ([]byte, error)
}
