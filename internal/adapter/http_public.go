// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
	"golang.org/x/time/rate"
)

// httpPublicFileReader reads the raw file path of a destination. It never
// sends a credential.
type httpPublicFileReader struct {
	client  *utils.HTTPClient
	limiter *rate.Limiter
	branch  string
	logger  *logger.Logger
}

// NewHTTPPublicFileReader returns a [PublicFileReader] that reads
// {RawURL}/{owner}/{repo}/{branch}/{path} without credentials.
func NewHTTPPublicFileReader(cfg config.ClientAdapter, log *logger.Logger) (PublicFileReader, error) {
	baseURL, err := normalizeBaseURL(cfg.RawURL)
	if err != nil {
		return nil, err
	}

	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	return &httpPublicFileReader{
		client:  utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		limiter: newLimiter(cfg.RateLimit),
		branch:  branch,
		logger:  log,
	}, nil
}

// FetchPublic implements [PublicFileReader].
//
// Sends an unauthenticated GET {RawURL}/{owner}/{repo}/{branch}/{path}. 404
// yields (nil, nil); other non-2xx statuses are returned as *[RemoteError].
func (r *httpPublicFileReader) FetchPublic(ctx context.Context, owner, repo, path string) ([]byte, error) {
	if err := waitLimiter(ctx, r.limiter); err != nil {
		return nil, err
	}

	rawURL := "/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) + "/" + url.PathEscape(r.branch) + "/" + escapePath(path)
	res, err := r.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch public file request: %w", err)
	}

	r.logger.Debug().
		Str("func", "httpPublicFileReader.FetchPublic").
		Str("path", rawURL).
		Int("status", res.StatusCode()).
		Msg("public read finished")

	if res.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err = mapHTTPError(res, false); err != nil {
		return nil, err
	}

	return res.Body(), nil
}
