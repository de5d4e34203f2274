// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-track-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-track-keeper/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	address         string
	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer()
	handler.Register(s)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  s,
		logger:  logger,
	}
}

func (g *grpcServer) listen() error {
	if g.gRPCNetListener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC listen on %s: %w", g.address, err)
	}
	g.gRPCNetListener = ln
	return nil
}

func (g *grpcServer) addr() string {
	if g.gRPCNetListener != nil {
		return g.gRPCNetListener.Addr().String()
	}
	return g.address
}

func (g *grpcServer) serve() error {
	g.logger.Info().Str("address", g.addr()).Msg("Launching GRPC server")
	g.handler.SetServing(true)
	if err := g.server.Serve(g.gRPCNetListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.handler.Shutdown()
	g.server.GracefulStop()
}
