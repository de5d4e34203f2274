// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the track-keeper command line client.
//
// Each invocation opens the local cache, unlocks the profile kept on this
// device when the command needs the remote, runs one operation of the
// storage core and waits for its background pushes before exiting.
package client
