// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-track-keeper/internal/adapter"
	"github.com/MKhiriev/go-track-keeper/internal/app"
	"github.com/MKhiriev/go-track-keeper/internal/service"
)

var (
	// ErrNotLoggedIn is returned by commands that need a profile when none
	// is stored on this device.
	ErrNotLoggedIn = errors.New("no local session")

	// ErrAlreadyLoggedIn is returned by init and recover when a session
	// already exists.
	ErrAlreadyLoggedIn = errors.New("a session already exists on this device, run `logout` first")

	// ErrSyncFailed is returned when some keys could not be pushed or pulled.
	ErrSyncFailed = errors.New("synchronization failed")

	errEmptyPassword = errors.New("empty password")
)

// hints maps errors to the message printed next to them; the first match wins.
var hints = []struct {
	target error
	hint   string
}{
	{ErrNotLoggedIn, app.MsgNotLoggedIn},
	{service.ErrWrongPassword, app.MsgWrongPassword},
	{service.ErrProfileNotFound, app.MsgProfileNotFound},
	{service.ErrRemoteNotConfigured, app.MsgRemoteNotConfigured},
	{service.ErrCorruptedDocument, app.MsgCorruptedDocument},
	{service.ErrInvalidKey, app.MsgInvalidKey},
	{service.ErrInvalidDocument, app.MsgInvalidDocument},
	{adapter.ErrUnauthorized, app.MsgRemoteUnauthorized},
	{adapter.ErrForbidden, app.MsgRemoteForbidden},
	{adapter.ErrConflict, app.MsgRemoteConflict},
	{adapter.ErrNotFound, app.MsgRemoteNotFound},
}

// Describe renders err for the terminal, followed by a hint when the error
// is a known one.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return fmt.Sprintf("error: %v\nhint: %s", err, h.hint)
		}
	}
	return "error: " + err.Error()
}

// syncError reports the failed keys of a sync operation.
func syncError(failed []string) error {
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSyncFailed, strings.Join(failed, ", "))
}
