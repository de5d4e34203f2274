// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidDocument is returned when a document handed to a write is not
	// valid JSON.
	ErrInvalidDocument = errors.New("document is not valid JSON")

	// ErrInvalidKey is returned for an empty key or a key that would escape
	// the data/ directory of the remote store.
	ErrInvalidKey = errors.New("invalid document key")

	// ErrCorruptedDocument is reported to the corruption handler when a remote
	// document exists but cannot be decrypted or parsed. Read itself returns
	// (nil, nil) in that case.
	ErrCorruptedDocument = errors.New("remote document is corrupted")

	ErrWrongPassword       = errors.New("wrong password")
	ErrProfileNotFound     = errors.New("profile not found on remote")
	ErrRemoteNotConfigured = errors.New("remote store is not configured")
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenSignKeyIsEmpty     = errors.New("token sign key is empty")

	// ErrForeignRepository is returned by the file service when the
	// authenticated login tries to modify a repository it does not own.
	ErrForeignRepository = errors.New("repository belongs to another owner")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
