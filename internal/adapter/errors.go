// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure classes of the remote store. A *[RemoteError] unwraps to at most one
// of them.
var (
	// ErrUnauthorized means the credential is invalid or expired (401).
	// Fatal: the user has to re-authenticate.
	ErrUnauthorized = errors.New("remote: unauthorized")

	// ErrForbidden means the request was rate-limited or the credential lacks
	// the required scope (403, 429). Retryable after a backoff.
	ErrForbidden = errors.New("remote: forbidden")

	// ErrConflict means the revision token was stale or a create hit an
	// existing file (409, 422 on writes). The caller must re-read and retry.
	ErrConflict = errors.New("remote: revision conflict")

	// ErrNotFound means the path does not exist (404). GetFile and ListFiles
	// translate it into empty results; DeleteFile surfaces it.
	ErrNotFound = errors.New("remote: not found")

	// ErrInvalidBaseURL is returned by the constructors for an unusable URL.
	ErrInvalidBaseURL = errors.New("invalid remote base url")
)

// RemoteError is returned for every non-2xx response. It preserves the raw
// status code and body for diagnostics.
type RemoteError struct {
	StatusCode int
	Body       string

	kind error
}

// Error implements error.
func (e *RemoteError) Error() string {
	body := e.Body
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	if e.kind != nil {
		return fmt.Sprintf("%s (http %d): %s", e.kind, e.StatusCode, body)
	}
	return fmt.Sprintf("remote: http %d: %s", e.StatusCode, body)
}

// Unwrap returns the failure class, or nil for an unclassified status.
func (e *RemoteError) Unwrap() error {
	return e.kind
}
