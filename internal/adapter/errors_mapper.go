// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response into a *RemoteError. isWrite marks
// PUT/DELETE requests, for which 422 means "file exists but no sha was
// supplied" and is therefore a conflict.
func mapHTTPError(resp *resty.Response, isWrite bool) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	remoteErr := &RemoteError{
		StatusCode: code,
		Body:       strings.TrimSpace(string(resp.Body())),
	}

	switch code {
	case http.StatusUnauthorized:
		remoteErr.kind = ErrUnauthorized
	case http.StatusForbidden, http.StatusTooManyRequests:
		remoteErr.kind = ErrForbidden
	case http.StatusNotFound:
		remoteErr.kind = ErrNotFound
	case http.StatusConflict:
		remoteErr.kind = ErrConflict
	case http.StatusUnprocessableEntity:
		if isWrite {
			remoteErr.kind = ErrConflict
		}
	}

	return remoteErr
}
