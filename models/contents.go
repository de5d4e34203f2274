// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// The types below mirror the GitHub "repository contents" REST resource. They
// are shared by the HTTP remote client and the development file server so
// both sides agree on a single wire format.

// ContentEntry is a file (or directory entry) as returned by
// GET /repos/{owner}/{repo}/contents/{path}.
type ContentEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding,omitempty"`

	// Content is the base64-encoded body. Only set for single-file reads.
	Content string `json:"content,omitempty"`
}

// PutContentRequest is the body of PUT /repos/{owner}/{repo}/contents/{path}.
// An empty SHA requests creation; a non-empty SHA requests an update that
// only succeeds when it matches the current revision.
type PutContentRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// DeleteContentRequest is the body of DELETE /repos/{owner}/{repo}/contents/{path}.
type DeleteContentRequest struct {
	Message string `json:"message"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch,omitempty"`
}

// PutContentResponse is returned by a successful PUT.
type PutContentResponse struct {
	Content ContentEntry `json:"content"`
}
