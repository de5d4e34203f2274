// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the transport servers of the development
// file server.
//
// It binds the listeners of every enabled transport up front, serves them
// until the context is cancelled or a termination signal arrives, and then
// shuts all of them down gracefully.
package server
