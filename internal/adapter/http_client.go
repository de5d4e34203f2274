// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-track-keeper/internal/config"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
	"github.com/MKhiriev/go-track-keeper/models"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
)

// httpRemoteFileClient is the [RemoteFileClient] over a contents REST API.
// Every request waits for the client-side rate limiter first.
type httpRemoteFileClient struct {
	client  *utils.HTTPClient
	limiter *rate.Limiter

	owner  string
	repo   string
	branch string

	logger *logger.Logger
}

// NewHTTPRemoteFileClient returns a [RemoteFileClient] for the repository
// described by cfg. The token is sent as a bearer credential on every
// request.
func NewHTTPRemoteFileClient(cfg config.ClientAdapter, log *logger.Logger) (RemoteFileClient, error) {
	baseURL, err := normalizeBaseURL(cfg.APIURL)
	if err != nil {
		return nil, err
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, errors.New("remote owner and repo are required")
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)
	client.SetHeader("Accept", acceptHeader).
		SetHeader("X-GitHub-Api-Version", apiVersion)
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &httpRemoteFileClient{
		client:  client,
		limiter: newLimiter(cfg.RateLimit),
		owner:   cfg.Owner,
		repo:    cfg.Repo,
		branch:  cfg.Branch,
		logger:  log,
	}, nil
}

// GetFile implements [RemoteFileClient].
//
// Sends GET /repos/{owner}/{repo}/contents/{path}?ref={branch} and decodes the
// base64 body. 404 yields (nil, nil); a directory at path is an error. Other
// failures are returned as *[RemoteError].
func (c *httpRemoteFileClient) GetFile(ctx context.Context, path string) (*models.RemoteFile, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	if c.branch != "" {
		req.SetQueryParam("ref", c.branch)
	}

	res, err := req.Get(c.contentsURL(path))
	if err != nil {
		return nil, fmt.Errorf("get file request: %w", err)
	}
	c.logResponse("httpRemoteFileClient.GetFile", path, res)

	if res.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if err = mapHTTPError(res, false); err != nil {
		return nil, err
	}

	var entry models.ContentEntry
	if err = json.Unmarshal(res.Body(), &entry); err != nil {
		return nil, fmt.Errorf("decode file %s: %w", path, err)
	}
	if entry.Type != "" && entry.Type != "file" {
		return nil, fmt.Errorf("%s is a %s, not a file", path, entry.Type)
	}

	content, err := decodeContent(entry.Content)
	if err != nil {
		return nil, fmt.Errorf("decode content of %s: %w", path, err)
	}

	return &models.RemoteFile{
		Name:          entry.Name,
		Path:          entry.Path,
		Content:       content,
		RevisionToken: entry.SHA,
	}, nil
}

// PutFile implements [RemoteFileClient].
//
// Sends PUT /repos/{owner}/{repo}/contents/{path} with the base64 content and,
// when revisionToken is set, the sha of the version being replaced. 409 and
// 422 map to [ErrConflict]; the returned token is the sha of the new blob.
func (c *httpRemoteFileClient) PutFile(ctx context.Context, path, content, revisionToken, message string) (string, error) {
	req, err := c.request(ctx)
	if err != nil {
		return "", err
	}

	res, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.PutContentRequest{
			Message: message,
			Content: base64.StdEncoding.EncodeToString([]byte(content)),
			SHA:     revisionToken,
			Branch:  c.branch,
		}).
		Put(c.contentsURL(path))
	if err != nil {
		return "", fmt.Errorf("put file request: %w", err)
	}
	c.logResponse("httpRemoteFileClient.PutFile", path, res)

	if err = mapHTTPError(res, true); err != nil {
		return "", err
	}

	var out models.PutContentResponse
	if err = json.Unmarshal(res.Body(), &out); err != nil {
		return "", fmt.Errorf("decode put response: %w", err)
	}
	if out.Content.SHA == "" {
		return "", fmt.Errorf("put response for %s carries no revision token", path)
	}

	return out.Content.SHA, nil
}

// DeleteFile implements [RemoteFileClient].
//
// Sends DELETE /repos/{owner}/{repo}/contents/{path} with the current sha.
// A stale sha maps to [ErrConflict], a missing file to [ErrNotFound].
func (c *httpRemoteFileClient) DeleteFile(ctx context.Context, path, revisionToken, message string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}

	res, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(models.DeleteContentRequest{
			Message: message,
			SHA:     revisionToken,
			Branch:  c.branch,
		}).
		Delete(c.contentsURL(path))
	if err != nil {
		return fmt.Errorf("delete file request: %w", err)
	}
	c.logResponse("httpRemoteFileClient.DeleteFile", path, res)

	return mapHTTPError(res, true)
}

// ListFiles implements [RemoteFileClient].
//
// Sends GET /repos/{owner}/{repo}/contents/{prefix}?ref={branch}. A missing
// directory yields an empty list; a single-file answer is returned as a
// one-element list.
func (c *httpRemoteFileClient) ListFiles(ctx context.Context, prefix string) ([]models.RemoteFileEntry, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}
	if c.branch != "" {
		req.SetQueryParam("ref", c.branch)
	}

	res, err := req.Get(c.contentsURL(prefix))
	if err != nil {
		return nil, fmt.Errorf("list files request: %w", err)
	}
	c.logResponse("httpRemoteFileClient.ListFiles", prefix, res)

	if res.StatusCode() == http.StatusNotFound {
		return []models.RemoteFileEntry{}, nil
	}
	if err = mapHTTPError(res, false); err != nil {
		return nil, err
	}

	var entries []models.ContentEntry
	body := res.Body()
	if len(body) > 0 && body[0] == '{' {
		var single models.ContentEntry
		if err = json.Unmarshal(body, &single); err != nil {
			return nil, fmt.Errorf("decode listing of %s: %w", prefix, err)
		}
		entries = append(entries, single)
	} else if err = json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode listing of %s: %w", prefix, err)
	}

	files := make([]models.RemoteFileEntry, 0, len(entries))
	for _, e := range entries {
		files = append(files, models.RemoteFileEntry{
			Name:          e.Name,
			Path:          e.Path,
			RevisionToken: e.SHA,
			Type:          e.Type,
		})
	}

	return files, nil
}

// GetUser implements [RemoteFileClient] by sending GET /user. An invalid or
// expired token maps to [ErrUnauthorized].
func (c *httpRemoteFileClient) GetUser(ctx context.Context) (models.RemoteUser, error) {
	req, err := c.request(ctx)
	if err != nil {
		return models.RemoteUser{}, err
	}

	res, err := req.Get("/user")
	if err != nil {
		return models.RemoteUser{}, fmt.Errorf("get user request: %w", err)
	}
	c.logResponse("httpRemoteFileClient.GetUser", "/user", res)

	if err = mapHTTPError(res, false); err != nil {
		return models.RemoteUser{}, err
	}

	var user models.RemoteUser
	if err = json.Unmarshal(res.Body(), &user); err != nil {
		return models.RemoteUser{}, fmt.Errorf("decode user: %w", err)
	}

	return user, nil
}

// GetRepo implements [RemoteFileClient] by sending GET /repos/{owner}/{repo}.
// A destination the token cannot see maps to [ErrNotFound].
func (c *httpRemoteFileClient) GetRepo(ctx context.Context) (models.RemoteRepo, error) {
	req, err := c.request(ctx)
	if err != nil {
		return models.RemoteRepo{}, err
	}

	repoURL := "/repos/" + url.PathEscape(c.owner) + "/" + url.PathEscape(c.repo)
	res, err := req.Get(repoURL)
	if err != nil {
		return models.RemoteRepo{}, fmt.Errorf("get repo request: %w", err)
	}
	c.logResponse("httpRemoteFileClient.GetRepo", repoURL, res)

	if err = mapHTTPError(res, false); err != nil {
		return models.RemoteRepo{}, err
	}

	var repo models.RemoteRepo
	if err = json.Unmarshal(res.Body(), &repo); err != nil {
		return models.RemoteRepo{}, fmt.Errorf("decode repo: %w", err)
	}

	return repo, nil
}

// request waits for the rate limiter and returns a request bound to ctx.
func (c *httpRemoteFileClient) request(ctx context.Context) (*resty.Request, error) {
	if err := waitLimiter(ctx, c.limiter); err != nil {
		return nil, err
	}
	return c.client.R().SetContext(ctx), nil
}

func (c *httpRemoteFileClient) contentsURL(path string) string {
	return "/repos/" + url.PathEscape(c.owner) + "/" + url.PathEscape(c.repo) + "/contents/" + escapePath(path)
}

func (c *httpRemoteFileClient) logResponse(fn, path string, res *resty.Response) {
	c.logger.Debug().
		Str("func", fn).
		Str("path", path).
		Int("status", res.StatusCode()).
		Dur("took", res.Time()).
		Msg("remote request finished")
}

// normalizeBaseURL trims input, adds an http scheme when none is given and
// strips trailing slashes.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// escapePath escapes every segment of a slash separated path.
func escapePath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// decodeContent decodes the base64 body of a contents response. The API
// wraps the encoding at 60 columns.
func decodeContent(encoded string) (string, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)
	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// newLimiter returns nil for a non-positive limit, which disables throttling.
func newLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

func waitLimiter(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}
