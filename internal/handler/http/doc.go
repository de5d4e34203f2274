// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the development file server.
//
// The routes imitate the subset of the GitHub REST contents API the client's
// remote adapter speaks: authenticated reads and writes under
// /repos/{owner}/{repo}/contents, the /user and /repos/{owner}/{repo}
// descriptors, and an unauthenticated raw endpoint used for account
// recovery. Request tracing, access logging, compression and bearer token
// authentication are handled by middleware before requests reach the
// service layer.
package http
