// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

const filesTable = "files"

var fileColumns = []string{"owner", "repo", "path", "content", "sha", "updated_at"}

// fileRepository is the PostgreSQL-backed implementation of [FileRepository].
// Queries are built with squirrel using $n placeholders.
type fileRepository struct {
	db     *DB
	psql   sq.StatementBuilderType
	logger *logger.Logger
}

// NewFileRepository constructs a [FileRepository] over db.
func NewFileRepository(db *DB, log *logger.Logger) FileRepository {
	log.Debug().Msg("creating file repository")
	return &fileRepository{
		db:     db,
		psql:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: log,
	}
}

func (r *fileRepository) GetFile(ctx context.Context, owner, repo, path string) (models.StoredFile, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.psql.Select(fileColumns...).
		From(filesTable).
		Where(fileKey(owner, repo, path)).
		ToSql()
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var f models.StoredFile
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&f.Owner, &f.Repo, &f.Path, &f.Content, &f.SHA, &f.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredFile{}, ErrFileNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.GetFile").Str("path", path).Msg("error selecting file")
		return models.StoredFile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, classify(err))
	}

	return f, nil
}

func (r *fileRepository) ListFiles(ctx context.Context, owner, repo, prefix string) ([]models.StoredFile, error) {
	log := logger.FromContext(ctx)

	where := sq.And{sq.Eq{"owner": owner}, sq.Eq{"repo": repo}}
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		where = append(where, sq.Like{"path": escapeLike(prefix) + "/%"})
	}

	query, args, err := r.psql.Select(fileColumns...).
		From(filesTable).
		Where(where).
		OrderBy("path").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.ListFiles").Str("path", prefix).Msg("error listing files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, classify(err))
	}
	defer rows.Close()

	files := make([]models.StoredFile, 0)
	for rows.Next() {
		var f models.StoredFile
		if err = rows.Scan(&f.Owner, &f.Repo, &f.Path, &f.Content, &f.SHA, &f.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*fileRepository.ListFiles").Msg("error scanning file row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		files = append(files, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return files, nil
}

func (r *fileRepository) CreateFile(ctx context.Context, file models.StoredFile) error {
	log := logger.FromContext(ctx)

	query, args, err := r.psql.Insert(filesTable).
		Columns("owner", "repo", "path", "content", "sha").
		Values(file.Owner, file.Repo, file.Path, file.Content, file.SHA).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*fileRepository.CreateFile").Str("path", file.Path).Msg("error inserting file")
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrFileAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, classify(err))
	}

	return nil
}

func (r *fileRepository) UpdateFile(ctx context.Context, file models.StoredFile, expectedSHA string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.psql.Update(filesTable).
		Set("content", file.Content).
		Set("sha", file.SHA).
		Set("updated_at", sq.Expr("NOW()")).
		Where(append(fileKey(file.Owner, file.Repo, file.Path), sq.Eq{"sha": expectedSHA})).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.UpdateFile").Str("path", file.Path).Msg("error updating file")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, classify(err))
	}

	return r.checkAffected(ctx, res, file.Owner, file.Repo, file.Path)
}

func (r *fileRepository) DeleteFile(ctx context.Context, owner, repo, path, expectedSHA string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.psql.Delete(filesTable).
		Where(append(fileKey(owner, repo, path), sq.Eq{"sha": expectedSHA})).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.DeleteFile").Str("path", path).Msg("error deleting file")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, classify(err))
	}

	return r.checkAffected(ctx, res, owner, repo, path)
}

// checkAffected tells a stale SHA apart from a missing file when a guarded
// statement touched no rows.
func (r *fileRepository) checkAffected(ctx context.Context, res sql.Result, owner, repo, path string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", ErrExecutingStatement, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err = r.GetFile(ctx, owner, repo, path); err != nil {
		return err
	}
	return ErrRevisionConflict
}

func fileKey(owner, repo, path string) sq.And {
	return sq.And{sq.Eq{"owner": owner}, sq.Eq{"repo": repo}, sq.Eq{"path": path}}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
