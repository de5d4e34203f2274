// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command server runs the development contents server that the client can
// sync against instead of the hosted contents API.
package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/handler"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/server"
	"github.com/MKhiriev/go-track-keeper/internal/service"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Print(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("track-keeper-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if cfg.App.DevUser != "" {
		token, err := services.AuthService.CreateToken(ctx, cfg.App.DevUser)
		if err != nil {
			log.Fatal().Err(err).Msg("error issuing development token")
		}
		fmt.Printf("ADAPTER_TOKEN for %q: %s\n", cfg.App.DevUser, token.SignedString)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
