// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidContent = errors.New("content is not valid base64")
	ErrInvalidSHA     = errors.New("sha is not a blob id")
	ErrShaRequired    = errors.New("sha is required")
	ErrUnknownBranch  = errors.New("branch not found")
)
