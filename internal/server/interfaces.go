// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT and then shuts down.
	RunServer()

	// Run serves until ctx is done or a transport fails. Listeners are bound
	// before Run blocks, so an unusable address is reported immediately.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
