// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, an optional JSON file and the defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and the
	// application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the server database and the client
	// local cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC listeners of the development file server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote file store the client mirrors to.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify the JWT access
	// tokens issued by the development server.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// DevUser is the login the development server issues a token for at
	// startup.
	// Env: APP_DEV_USER
	DevUser string `env:"DEV_USER"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is the file the client writes its logs to.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the development server database connection settings.
	DB DB `envPrefix:"DB_"`

	// Local holds the client local cache settings.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the client local cache settings.
type Local struct {
	// Driver selects the cache implementation: "sqlite", "bolt" or "memory".
	// Env: STORAGE_LOCAL_DRIVER
	Driver string `env:"DRIVER"`

	// Path is the database file for the sqlite and bolt drivers.
	// Env: STORAGE_LOCAL_PATH
	Path string `env:"PATH"`

	// Namespace scopes every key of the cache.
	// Env: STORAGE_LOCAL_NAMESPACE
	Namespace string `env:"NAMESPACE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC server listens.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings of the remote file store.
type Adapter struct {
	// APIURL is the base URL of the contents API.
	// Env: ADAPTER_API_URL
	APIURL string `env:"API_URL"`

	// RawURL is the base URL of the unauthenticated raw read path.
	// Env: ADAPTER_RAW_URL
	RawURL string `env:"RAW_URL"`

	// Owner is the account that owns the destination repository.
	// Env: ADAPTER_OWNER
	Owner string `env:"OWNER"`

	// Repo is the destination repository name.
	// Env: ADAPTER_REPO
	Repo string `env:"REPO"`

	// Branch is the branch written to and read from.
	// Env: ADAPTER_BRANCH
	Branch string `env:"BRANCH"`

	// Token is the access token sent as a bearer credential.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the maximum number of outbound requests per second.
	// A negative value disables throttling; zero falls back to the default.
	// Env: ADAPTER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// RetryInterval is how often failed pushes are retried.
	// Env: WORKERS_RETRY_INTERVAL
	RetryInterval time.Duration `env:"RETRY_INTERVAL"`
}

// Local cache drivers.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "track-keeper-dev",
			TokenDuration: 24 * time.Hour,
			DevUser:       "dev",
			Version:       "dev",
			LogFile:       "track-keeper.log",
		},
		Storage: Storage{
			Local: Local{
				Driver:    DriverSQLite,
				Path:      "track-keeper.db",
				Namespace: "default",
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			APIURL:         "https://api.github.com",
			RawURL:         "https://raw.githubusercontent.com",
			Branch:         "main",
			RequestTimeout: 30 * time.Second,
			RateLimit:      10,
		},
		Workers: Workers{
			RetryInterval: time.Minute,
		},
	}
}
