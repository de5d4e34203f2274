// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-track-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// FileService implements the repository contents API of the development
// file server on top of a store.FileRepository.
type FileService interface {
	// GetFile returns the file at path with its base64 content, or
	// store.ErrFileNotFound.
	GetFile(ctx context.Context, owner, repo, path string) (models.ContentEntry, error)

	// ListDirectory returns the direct children of dir. Nested paths are
	// folded into "dir" entries. A missing directory yields
	// store.ErrFileNotFound.
	ListDirectory(ctx context.Context, owner, repo, dir string) ([]models.ContentEntry, error)

	// PutFile creates path when sha is empty and updates it otherwise.
	// login must own the repository.
	PutFile(ctx context.Context, login, owner, repo, path string, req models.PutContentRequest) (models.ContentEntry, error)

	// DeleteFile removes path when sha matches. login must own the
	// repository.
	DeleteFile(ctx context.Context, login, owner, repo, path string, req models.DeleteContentRequest) error

	// GetRaw returns the decoded file body for the public raw path.
	GetRaw(ctx context.Context, owner, repo, path string) ([]byte, error)

	// DescribeRepo returns the repository descriptor served by
	// GET /repos/{owner}/{repo}.
	DescribeRepo(ctx context.Context, owner, repo string) models.RemoteRepo
}

// AuthService issues and validates the bearer tokens of the development file
// server.
type AuthService interface {
	CreateToken(ctx context.Context, login string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
