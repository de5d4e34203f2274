// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ProfileEnvelope is the wire format of data/profile.json. Every field except
// EncryptedData is stored in plaintext so that password verification and
// destination discovery work before any key can be derived.
type ProfileEnvelope struct {
	PasswordHash  string `json:"password_hash"`
	PasswordSalt  string `json:"password_salt"`
	GithubOwner   string `json:"github_owner"`
	GithubRepo    string `json:"github_repo"`
	EncryptedData string `json:"encrypted_data"`
}

// Profile is the decrypted view of a [ProfileEnvelope]. Data holds the
// opaque remainder of the profile (display name, preferences, ...).
type Profile struct {
	PasswordHash string
	PasswordSalt string
	Owner        string
	Repo         string
	Data         Document
}

// AuthEnvelope is the wire format of data/auth.enc.json. It carries the data
// salt in plaintext and the remote access token encrypted with the user
// password, so that a fresh device can recover remote access from the
// password alone.
type AuthEnvelope struct {
	Salt           string `json:"salt"`
	EncryptedToken string `json:"encrypted_token"`
}

// Recovery is everything a fresh device needs to resume a session: the
// local session record, the unlocked credentials and the remote token.
type Recovery struct {
	Session     Session
	Credentials Credentials
	Token       string
}
