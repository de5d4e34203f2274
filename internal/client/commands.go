// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/crypto"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/service"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/models"
)

// appFactory builds the App of one command run and returns the function
// that releases its resources.
type appFactory func(cmd *cobra.Command, configPath string) (*App, func() error, error)

// NewRootCommand returns the track-keeper command tree.
func NewRootCommand(build models.AppBuildInfo) *cobra.Command {
	return newRootCommand(build, func(cmd *cobra.Command, configPath string) (*App, func() error, error) {
		cfg, err := config.GetClientConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		password := TerminalPassword(os.Stdin, cmd.ErrOrStderr())
		return Bootstrap(cmd.Context(), cfg, password, cmd.OutOrStdout(), cmd.ErrOrStderr())
	})
}

// Bootstrap wires the storage core described by cfg into an App.
// Diagnostics about corrupted remote documents go to errOut.
func Bootstrap(ctx context.Context, cfg *config.ClientConfig, password PasswordFunc, out, errOut io.Writer, opts ...crypto.Option) (*App, func() error, error) {
	log := logger.NewClientLogger("track-keeper-client", cfg.App.LogFile)

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening local cache: %w", err)
	}

	public, err := adapter.NewHTTPPublicFileReader(cfg.Adapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, nil, fmt.Errorf("error creating public file reader: %w", err)
	}

	cryptoService := crypto.NewCryptoService(opts...)
	newRemote := service.NewRemoteStoreFactory(cfg.Adapter, cryptoService, corruptionReporter(errOut), log)
	services := service.NewClientServices(storages, cryptoService, public, newRemote, log)

	return NewApp(cfg, storages, services, password, out, log), storages.Close, nil
}

func corruptionReporter(w io.Writer) service.CorruptionHandler {
	return func(key string, err error) {
		fmt.Fprintf(w, "warning: remote document %q skipped: %v\n", key, err)
	}
}

func newRootCommand(build models.AppBuildInfo, factory appFactory) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "track-keeper",
		Short:         "Encrypted documents cached locally and synced to a git contents store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "JSON configuration file")

	// withApp runs fn against a freshly built App and releases it afterwards.
	withApp := func(fn func(cmd *cobra.Command, args []string, a *App) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) (err error) {
			a, closeApp, err := factory(cmd, configPath)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := closeApp(); closeErr != nil && err == nil {
					err = closeErr
				}
			}()
			return fn(cmd, args, a)
		}
	}

	root.AddCommand(
		newInitCommand(withApp),
		&cobra.Command{
			Use:   "recover [owner] [repo]",
			Short: "Restore an existing profile on this device",
			Args:  cobra.MaximumNArgs(2),
			RunE: withApp(func(cmd *cobra.Command, args []string, a *App) error {
				owner, repo := destinationArgs(args)
				return a.Recover(cmd.Context(), owner, repo)
			}),
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print a document from the local cache",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(cmd *cobra.Command, args []string, a *App) error {
				return a.Get(cmd.Context(), args[0])
			}),
		},
		&cobra.Command{
			Use:   "put <key> [json]",
			Short: "Store a document, read from stdin when json is omitted",
			Args:  cobra.RangeArgs(1, 2),
			RunE: withApp(func(cmd *cobra.Command, args []string, a *App) error {
				doc, err := documentArg(cmd, args[1:])
				if err != nil {
					return err
				}
				return a.Put(cmd.Context(), args[0], doc)
			}),
		},
		&cobra.Command{
			Use:     "rm <key>",
			Aliases: []string{"delete"},
			Short:   "Delete a document",
			Args:    cobra.ExactArgs(1),
			RunE: withApp(func(cmd *cobra.Command, args []string, a *App) error {
				return a.Remove(cmd.Context(), args[0])
			}),
		},
		&cobra.Command{
			Use:     "ls",
			Aliases: []string{"list"},
			Short:   "List the keys in the local cache",
			Args:    cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *App) error {
				return a.List(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "pull",
			Short: "Overwrite local documents with the remote copies",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *App) error {
				return a.Pull(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "push",
			Short: "Upload every local document",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *App) error {
				return a.Push(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "retry",
			Short: "Push the changes that failed to sync earlier",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *App) error {
				return a.Retry(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Keep retrying failed changes until interrupted",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *App) error {
				return a.Watch(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the session and the pending changes",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *App) error {
				return a.Status(cmd.Context())
			}),
		},
		newLogoutCommand(withApp),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprint(cmd.OutOrStdout(), build.String())
			},
		},
	)

	return root
}

type appRunner = func(fn func(cmd *cobra.Command, args []string, a *App) error) func(*cobra.Command, []string) error

func newInitCommand(withApp appRunner) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "init [owner] [repo]",
		Short: "Create a profile in a remote repository",
		Long: "Create a profile in owner/repo, falling back to ADAPTER_OWNER and ADAPTER_REPO.\n" +
			"The access token is taken from ADAPTER_TOKEN and stored encrypted under the master password.",
		Args: cobra.MaximumNArgs(2),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *App) error {
			owner, repo := destinationArgs(args)
			return a.Init(cmd.Context(), owner, repo, models.Document(data))
		}),
	}
	cmd.Flags().StringVar(&data, "data", "{}", "Profile data as a JSON object")

	return cmd
}

func newLogoutCommand(withApp appRunner) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the session and every local document",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *App) error {
			return a.Logout(cmd.Context(), force)
		}),
	}
	cmd.Flags().BoolVar(&force, "force", false, "Discard changes that were not synced")

	return cmd
}

func destinationArgs(args []string) (owner, repo string) {
	if len(args) > 0 {
		owner = args[0]
	}
	if len(args) > 1 {
		repo = args[1]
	}
	return owner, repo
}

func documentArg(cmd *cobra.Command, args []string) (models.Document, error) {
	if len(args) > 0 {
		return models.Document(args[0]), nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	return models.Document(bytes.TrimSpace(raw)), nil
}
