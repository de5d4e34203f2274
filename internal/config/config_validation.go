// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("%w: database dsn is required", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key and positive token duration are required", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: http and grpc addresses are required", ErrInvalidServerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	switch cfg.Storage.Local.Driver {
	case DriverSQLite, DriverBolt:
		if cfg.Storage.Local.Path == "" {
			return fmt.Errorf("%w: local cache path is required for %s", ErrInvalidStorageConfigs, cfg.Storage.Local.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown local cache driver %q", ErrInvalidStorageConfigs, cfg.Storage.Local.Driver)
	}

	if cfg.Storage.Local.Namespace == "" {
		return fmt.Errorf("%w: local cache namespace is required", ErrInvalidStorageConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
	}

	for _, raw := range []string{cfg.Adapter.APIURL, cfg.Adapter.RawURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: invalid url %q", ErrInvalidAdapterConfigs, raw)
		}
	}

	if cfg.Workers.RetryInterval <= 0 {
		return fmt.Errorf("%w: retry interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
