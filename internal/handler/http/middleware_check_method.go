// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-track-keeper/internal/app"
	"github.com/MKhiriev/go-track-keeper/internal/utils"
)

// unsupportedMethod is registered as the router's MethodNotAllowed handler.
// The contents API answers a known path with an unsupported method the same
// way as an unknown path, so clients cannot probe which routes exist.
func unsupportedMethod(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, http.StatusNotFound, app.MsgNotFound)
}
