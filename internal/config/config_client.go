// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	Version string
	LogFile string
}

// ClientAdapter holds the remote file store settings used by the client
// transport layer.
type ClientAdapter struct {
	APIURL         string
	RawURL         string
	Owner          string
	Repo           string
	Branch         string
	Token          string
	RequestTimeout time.Duration
	RateLimit      float64
}

// RemoteConfigured reports whether enough is known to talk to the remote
// store. Without it the client runs local-only.
func (a ClientAdapter) RemoteConfigured() bool {
	return a.APIURL != "" && a.Owner != "" && a.Repo != "" && a.Token != ""
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	Local Local
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	RetryInterval time.Duration
}

// ClientConfig is the client configuration view assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client configuration. jsonPath,
// when non-empty, names a JSON file that is merged below the environment.
func GetClientConfig(jsonPath string) (*ClientConfig, error) {
	builder := newConfigBuilder().withEnv()
	if jsonPath != "" {
		builder.configs = append(builder.configs, &StructuredConfig{JSONFilePath: jsonPath})
	}

	cfg, err := builder.
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
			LogFile: cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			APIURL:         cfg.Adapter.APIURL,
			RawURL:         cfg.Adapter.RawURL,
			Owner:          cfg.Adapter.Owner,
			Repo:           cfg.Adapter.Repo,
			Branch:         cfg.Adapter.Branch,
			Token:          cfg.Adapter.Token,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RateLimit:      cfg.Adapter.RateLimit,
		},
		Storage: ClientStorage{Local: cfg.Storage.Local},
		Workers: ClientWorkers{RetryInterval: cfg.Workers.RetryInterval},
	}

	return clientCfg, clientCfg.validate()
}
