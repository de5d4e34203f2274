// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-track-keeper/internal/app"
	"github.com/MKhiriev/go-track-keeper/internal/logger"
	"github.com/MKhiriev/go-track-keeper/internal/store"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
	"github.com/MKhiriev/go-track-keeper/models"
	"github.com/go-chi/chi/v5"
)

// getContents answers GET /repos/{owner}/{repo}/contents/{path}: a single
// file when path names one, otherwise the listing of the directory.
func (h *Handler) getContents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	path := wildcardPath(r)

	if path != "" {
		entry, err := h.services.FileService.GetFile(ctx, owner, repo, path)
		if err == nil {
			_, _ = utils.WriteJSON(w, entry, http.StatusOK)
			return
		}
		if !errors.Is(err, store.ErrFileNotFound) {
			writeServiceError(w, r, err, "get file failed")
			return
		}
	}

	entries, err := h.services.FileService.ListDirectory(ctx, owner, repo, path)
	if err != nil {
		writeServiceError(w, r, err, "list directory failed")
		return
	}

	_, _ = utils.WriteJSON(w, entries, http.StatusOK)
}

// putContents answers PUT /repos/{owner}/{repo}/contents/{path}. Creation
// replies 201, an update 200.
func (h *Handler) putContents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	login, ok := utils.GetLoginFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoLoginInContext, "put file rejected")
		return
	}

	var req models.PutContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, app.MsgProblemsParsingJSON)
		return
	}

	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	entry, err := h.services.FileService.PutFile(ctx, login, owner, repo, wildcardPath(r), req)
	if err != nil {
		writeServiceError(w, r, err, "put file failed")
		return
	}

	status := http.StatusOK
	if req.SHA == "" {
		status = http.StatusCreated
	}
	_, _ = utils.WriteJSON(w, models.PutContentResponse{Content: entry}, status)
}

// deleteContents answers DELETE /repos/{owner}/{repo}/contents/{path}.
func (h *Handler) deleteContents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	login, ok := utils.GetLoginFromContext(ctx)
	if !ok {
		writeServiceError(w, r, ErrNoLoginInContext, "delete file rejected")
		return
	}

	var req models.DeleteContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, app.MsgProblemsParsingJSON)
		return
	}

	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	if err := h.services.FileService.DeleteFile(ctx, login, owner, repo, wildcardPath(r), req); err != nil {
		writeServiceError(w, r, err, "delete file failed")
		return
	}

	_, _ = utils.WriteJSON(w, map[string]any{"content": nil}, http.StatusOK)
}

// getUser answers GET /user with the login the bearer token was issued for.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	login, ok := utils.GetLoginFromContext(r.Context())
	if !ok {
		writeServiceError(w, r, ErrNoLoginInContext, "get user rejected")
		return
	}

	_, _ = utils.WriteJSON(w, models.RemoteUser{Login: login}, http.StatusOK)
}

func (h *Handler) getRepo(w http.ResponseWriter, r *http.Request) {
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")
	_, _ = utils.WriteJSON(w, h.services.FileService.DescribeRepo(r.Context(), owner, repo), http.StatusOK)
}

// getRaw answers GET /raw/{owner}/{repo}/{branch}/{path} with the bare file
// body. Only the served branch exists.
func (h *Handler) getRaw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, repo := chi.URLParam(r, "owner"), chi.URLParam(r, "repo")

	if chi.URLParam(r, "branch") != h.services.FileService.DescribeRepo(ctx, owner, repo).DefaultBranch {
		writeServiceError(w, r, store.ErrFileNotFound, "unknown branch")
		return
	}

	body, err := h.services.FileService.GetRaw(ctx, owner, repo, wildcardPath(r))
	if err != nil {
		writeServiceError(w, r, err, "get raw file failed")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// wildcardPath returns the unescaped catch-all segment of the route.
func wildcardPath(r *http.Request) string {
	raw := chi.URLParam(r, "*")
	if path, err := url.PathUnescape(raw); err == nil {
		return path
	}
	return raw
}
