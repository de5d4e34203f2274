// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RemoteFile is a file fetched from the remote content store.
type RemoteFile struct {
	Name string
	Path string

	// Content is the decoded file body.
	Content string

	// RevisionToken identifies the version of the file that was read. It
	// must be presented on the next update of the same path.
	RevisionToken string
}

// RemoteFileEntry is one element of a remote directory listing.
type RemoteFileEntry struct {
	Name          string
	Path          string
	RevisionToken string
	Type          string
}

// RemoteUser is the identity the configured access token belongs to.
type RemoteUser struct {
	Login string `json:"login"`
}

// RemoteRepo describes the remote destination.
type RemoteRepo struct {
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
}
