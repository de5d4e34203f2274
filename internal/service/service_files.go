// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
	"github.com/MKhiriev/go-track-keeper/internal/validators"
	"github.com/MKhiriev/go-track-keeper/models"
)

const (
	entryTypeFile = "file"
	entryTypeDir  = "dir"

	contentEncoding = "base64"
)

// fileService serves repository contents out of a FileRepository. Revision
// tokens are git blob ids of the stored bytes.
type fileService struct {
	files         store.FileRepository
	validator     validators.Validator
	defaultBranch string

	logger *logger.Logger
}

func NewFileService(files store.FileRepository, validator validators.Validator, defaultBranch string, log *logger.Logger) FileService {
	return &fileService{
		files:         files,
		validator:     validator,
		defaultBranch: defaultBranch,
		logger:        log,
	}
}

func (s *fileService) GetFile(ctx context.Context, owner, repo, filePath string) (models.ContentEntry, error) {
	clean, err := cleanFilePath(filePath)
	if err != nil {
		return models.ContentEntry{}, err
	}

	file, err := s.files.GetFile(ctx, owner, repo, clean)
	if err != nil {
		return models.ContentEntry{}, err
	}

	entry := fileEntry(file)
	entry.Encoding = contentEncoding
	entry.Content = base64.StdEncoding.EncodeToString(file.Content)
	return entry, nil
}

func (s *fileService) ListDirectory(ctx context.Context, owner, repo, dir string) ([]models.ContentEntry, error) {
	dir = strings.Trim(dir, "/")
	if dir != "" {
		if _, err := cleanFilePath(dir); err != nil {
			return nil, err
		}
	}

	files, err := s.files.ListFiles(ctx, owner, repo, dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, store.ErrFileNotFound
	}

	entries := make([]models.ContentEntry, 0, len(files))
	seenDirs := make(map[string]struct{})
	for _, file := range files {
		rel := file.Path
		if dir != "" {
			rel = strings.TrimPrefix(file.Path, dir+"/")
		}

		name, _, nested := strings.Cut(rel, "/")
		if !nested {
			entries = append(entries, fileEntry(file))
			continue
		}
		if _, ok := seenDirs[name]; ok {
			continue
		}
		seenDirs[name] = struct{}{}
		entries = append(entries, models.ContentEntry{
			Type: entryTypeDir,
			Name: name,
			Path: path.Join(dir, name),
		})
	}

	return entries, nil
}

func (s *fileService) PutFile(ctx context.Context, login, owner, repo, filePath string, req models.PutContentRequest) (models.ContentEntry, error) {
	if err := checkOwner(login, owner); err != nil {
		return models.ContentEntry{}, err
	}
	clean, err := cleanFilePath(filePath)
	if err != nil {
		return models.ContentEntry{}, err
	}

	if err = s.validator.Validate(ctx, req); err != nil {
		return models.ContentEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	content, err := validators.DecodeContent(req.Content)
	if err != nil {
		return models.ContentEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	file := models.StoredFile{
		Owner:   owner,
		Repo:    repo,
		Path:    clean,
		Content: content,
		SHA:     utils.BlobSHA(content),
	}

	log := logger.FromContext(ctx)
	if req.SHA == "" {
		err = s.files.CreateFile(ctx, file)
	} else {
		err = s.files.UpdateFile(ctx, file, req.SHA)
	}
	if err != nil {
		log.Err(err).Str("path", clean).Bool("create", req.SHA == "").Msg("storing file failed")
		return models.ContentEntry{}, err
	}

	log.Debug().Str("path", clean).Str("sha", file.SHA).Msg("file stored")
	return fileEntry(file), nil
}

func (s *fileService) DeleteFile(ctx context.Context, login, owner, repo, filePath string, req models.DeleteContentRequest) error {
	if err := checkOwner(login, owner); err != nil {
		return err
	}
	clean, err := cleanFilePath(filePath)
	if err != nil {
		return err
	}
	if err = s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return s.files.DeleteFile(ctx, owner, repo, clean, req.SHA)
}

func (s *fileService) GetRaw(ctx context.Context, owner, repo, filePath string) ([]byte, error) {
	clean, err := cleanFilePath(filePath)
	if err != nil {
		return nil, err
	}

	file, err := s.files.GetFile(ctx, owner, repo, clean)
	if err != nil {
		return nil, err
	}
	return file.Content, nil
}

func (s *fileService) DescribeRepo(_ context.Context, owner, repo string) models.RemoteRepo {
	return models.RemoteRepo{
		FullName:      owner + "/" + repo,
		Private:       true,
		DefaultBranch: s.defaultBranch,
	}
}

func fileEntry(file models.StoredFile) models.ContentEntry {
	return models.ContentEntry{
		Type: entryTypeFile,
		Name: path.Base(file.Path),
		Path: file.Path,
		SHA:  file.SHA,
		Size: len(file.Content),
	}
}

// cleanFilePath trims surrounding slashes and rejects empty paths and
// relative segments.
func cleanFilePath(p string) (string, error) {
	p = strings.Trim(p, "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidDataProvided)
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", fmt.Errorf("%w: invalid path %q", ErrInvalidDataProvided, p)
		}
	}
	return p, nil
}

func checkOwner(login, owner string) error {
	if login == "" || !strings.EqualFold(login, owner) {
		return fmt.Errorf("%w: %s", ErrForeignRepository, owner)
	}
	return nil
}
