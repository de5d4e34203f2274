// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
)

// ServerConfig is the configuration view of the development file server.
type ServerConfig struct {
	App     App
	DB      DB
	Server  Server
	Adapter ServerAdapter
}

// ServerAdapter carries the branch the server reports as default for every
// repository.
type ServerAdapter struct {
	Branch string
}

// GetServerConfig loads the server configuration from the environment, the
// process arguments and the optional JSON file.
func GetServerConfig() (*ServerConfig, error) {
	return getServerConfig(os.Args[1:])
}

func getServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:     cfg.App,
		DB:      cfg.Storage.DB,
		Server:  cfg.Server,
		Adapter: ServerAdapter{Branch: cfg.Adapter.Branch},
	}

	return serverCfg, serverCfg.validate()
}
