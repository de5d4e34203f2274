// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-track-keeper/internal/utils"
	"github.com/MKhiriev/go-track-keeper/models"
)

// contentsServer is an in-memory contents API with optimistic concurrency
// and a raw download route under /raw.
type contentsServer struct {
	mu         sync.Mutex
	token      string
	files      map[string]string // owner/repo/path -> content
	failWrites bool
}

func newContentsServer(t *testing.T, token string) (*contentsServer, *httptest.Server) {
	t.Helper()

	s := &contentsServer{token: token, files: make(map[string]string)}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/repos/{owner}/{repo}/contents/*", s.get)
		r.Put("/repos/{owner}/{repo}/contents/*", s.put)
		r.Delete("/repos/{owner}/{repo}/contents/*", s.delete)
	})
	r.Get("/raw/{owner}/{repo}/{branch}/*", s.raw)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *contentsServer) setFailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

func (s *contentsServer) content(fullPath string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.files[fullPath]
	return c, ok
}

func (s *contentsServer) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			utils.WriteError(w, http.StatusUnauthorized, "Bad credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func filePath(r *http.Request) string {
	return chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo") + "/" + chi.URLParam(r, "*")
}

func (s *contentsServer) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	full := filePath(r)
	repoPrefix := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo") + "/"
	rel := strings.TrimPrefix(full, repoPrefix)

	if content, ok := s.files[full]; ok {
		_, _ = utils.WriteJSON(w, models.ContentEntry{
			Type:     "file",
			Name:     path.Base(rel),
			Path:     rel,
			SHA:      utils.BlobSHA([]byte(content)),
			Size:     len(content),
			Encoding: "base64",
			Content:  base64.StdEncoding.EncodeToString([]byte(content)),
		}, http.StatusOK)
		return
	}

	var entries []models.ContentEntry
	for p, content := range s.files {
		child, ok := strings.CutPrefix(p, full+"/")
		if !ok || strings.Contains(child, "/") {
			continue
		}
		entries = append(entries, models.ContentEntry{
			Type: "file",
			Name: child,
			Path: strings.TrimPrefix(p, repoPrefix),
			SHA:  utils.BlobSHA([]byte(content)),
			Size: len(content),
		})
	}
	if len(entries) == 0 {
		utils.WriteError(w, http.StatusNotFound, "Not Found")
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	_, _ = utils.WriteJSON(w, entries, http.StatusOK)
}

func (s *contentsServer) put(w http.ResponseWriter, r *http.Request) {
	var req models.PutContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}
	raw, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		utils.WriteError(w, http.StatusUnprocessableEntity, "content is not valid Base64")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		utils.WriteError(w, http.StatusServiceUnavailable, "")
		return
	}

	full := filePath(r)
	current, exists := s.files[full]
	switch {
	case exists && req.SHA == "":
		utils.WriteError(w, http.StatusUnprocessableEntity, "Invalid request.\n\n\"sha\" wasn't supplied.")
		return
	case req.SHA != "" && (!exists || utils.BlobSHA([]byte(current)) != req.SHA):
		utils.WriteError(w, http.StatusConflict, "sha does not match")
		return
	}

	s.files[full] = string(raw)

	status := http.StatusOK
	if !exists {
		status = http.StatusCreated
	}
	_, _ = utils.WriteJSON(w, models.PutContentResponse{Content: models.ContentEntry{
		Type: "file",
		Name: path.Base(full),
		SHA:  utils.BlobSHA(raw),
	}}, status)
}

func (s *contentsServer) delete(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Problems parsing JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		utils.WriteError(w, http.StatusServiceUnavailable, "")
		return
	}

	full := filePath(r)
	current, exists := s.files[full]
	switch {
	case !exists:
		utils.WriteError(w, http.StatusNotFound, "Not Found")
		return
	case utils.BlobSHA([]byte(current)) != req.SHA:
		utils.WriteError(w, http.StatusConflict, "sha does not match")
		return
	}

	delete(s.files, full)
	_, _ = w.Write([]byte(`{"content":null}`))
}

func (s *contentsServer) raw(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "branch") != "main" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	content, ok := s.files[filePath(r)]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(content))
}
