// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains user-facing message strings shared by the development
// file server and the command line client.
//
// Server messages follow the wording of the contents API the file server
// imitates, so the remote client sees the same error bodies from both.
package app

// File server response messages.
const (
	MsgNotFound               = "Not Found"
	MsgBadCredentials         = "Bad credentials"
	MsgTokenIsExpired         = "token is expired"
	MsgInvalidDataProvided    = "invalid data provided"
	MsgProblemsParsingJSON    = "Problems parsing JSON"
	MsgShaNotSupplied         = "Invalid request.\n\n\"sha\" wasn't supplied."
	MsgShaDoesNotMatch        = "sha does not match"
	MsgResourceForbidden      = "Resource not accessible by integration"
	MsgServiceUnavailable     = "service temporarily unavailable"
	MsgInternalServerError    = "internal server error"
	MsgRequiresAuthentication = "Requires authentication"
)

// Client messages, printed by the command line client next to the error that
// caused them.
const (
	MsgNotLoggedIn         = "no profile on this device, run `init` or `recover` first"
	MsgWrongPassword       = "wrong password"
	MsgRemoteUnauthorized  = "the remote rejected the access token"
	MsgRemoteForbidden     = "the access token may not write to this repository or the rate limit was hit"
	MsgRemoteConflict      = "the remote copy changed meanwhile, run `pull` and try again"
	MsgRemoteNotFound      = "the repository or file does not exist on the remote"
	MsgRemoteNotConfigured = "remote storage is not configured"
	MsgProfileExists       = "a profile already exists in this repository, use `recover`"
	MsgProfileNotFound     = "no profile was found in this repository"
	MsgCorruptedDocument   = "a stored document could not be decrypted or parsed"
	MsgInvalidKey          = "invalid document key"
	MsgInvalidDocument     = "document must be valid JSON"
)
