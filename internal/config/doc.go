// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the track-keeper client and the development file server.
//
// Configuration is assembled from multiple sources. For non-zero fields the
// first source wins:
//  1. Environment variables
//  2. Command-line flags (server only; the client CLI owns its own flags)
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetServerConfig] for the development file server
// and [GetClientConfig] for the client runtime.
package config
