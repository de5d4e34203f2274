// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/internal/validators"
)

// Services groups the services of the development file server.
type Services struct {
	FileService    FileService
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	authService, err := NewAuthService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		FileService:    NewFileService(storages.FileRepository, validators.NewContentsValidator(cfg.Adapter.Branch), cfg.Adapter.Branch, logger),
		AuthService:    authService,
		AppInfoService: appInfoService,
	}, nil
}
