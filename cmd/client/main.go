// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command client is the track-keeper command line: documents are kept in a
// local cache and synced encrypted to a git contents store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-track-keeper/internal/client"
	"github.com/MKhiriev/go-track-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := client.NewRootCommand(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, client.Describe(err))
		stop()
		os.Exit(1)
	}
}
