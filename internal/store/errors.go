// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrFileAlreadyExists is returned when a create targets a path that is
	// already taken.
	ErrFileAlreadyExists = errors.New("file already exists")

	// ErrFileNotFound is returned when a query or update targets a path that
	// does not exist.
	ErrFileNotFound = errors.New("file was not found")

	// ErrRevisionConflict is returned when the SHA supplied by the caller does
	// not match the one stored, meaning somebody else wrote the file since the
	// caller last read it.
	ErrRevisionConflict = errors.New("file revision conflict occurred")

	// ErrRetryable marks a database failure that may succeed if attempted
	// again (lost connection, serialization failure, deadlock).
	ErrRetryable = errors.New("transient database error")

	// ErrUnknownDriver is returned by the storage factory for an
	// unsupported local cache driver.
	ErrUnknownDriver = errors.New("unknown local cache driver")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
