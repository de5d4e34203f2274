// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/MKhiriev/go-track-keeper/models"
)

const (
	FieldContent = "content"
	FieldSHA     = "sha"
	FieldBranch  = "branch"
)

// blobIDLength is the length of a hex encoded git blob id.
const blobIDLength = 40

// ContentsValidator validates contents API write requests against the
// single branch the file server serves.
type ContentsValidator struct {
	branch string
}

func NewContentsValidator(branch string) Validator {
	return &ContentsValidator{branch: branch}
}

func (v *ContentsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PutContentRequest:
		return v.validatePut(ctx, value, fields...)
	case *models.PutContentRequest:
		return v.validatePut(ctx, *value, fields...)

	case models.DeleteContentRequest:
		return v.validateDelete(ctx, value, fields...)
	case *models.DeleteContentRequest:
		return v.validateDelete(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validatePut accepts an empty sha: it requests creation.
func (v *ContentsValidator) validatePut(_ context.Context, req models.PutContentRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContent, FieldSHA, FieldBranch}
	}

	for _, f := range fields {
		switch f {
		case FieldContent:
			if _, err := DecodeContent(req.Content); err != nil {
				return ErrInvalidContent
			}
		case FieldSHA:
			if req.SHA != "" && !isBlobID(req.SHA) {
				return ErrInvalidSHA
			}
		case FieldBranch:
			if err := v.checkBranch(req.Branch); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ContentsValidator) validateDelete(_ context.Context, req models.DeleteContentRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSHA, FieldBranch}
	}

	for _, f := range fields {
		switch f {
		case FieldSHA:
			if req.SHA == "" {
				return ErrShaRequired
			}
			if !isBlobID(req.SHA) {
				return ErrInvalidSHA
			}
		case FieldBranch:
			if err := v.checkBranch(req.Branch); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// checkBranch accepts an omitted branch, which means the default one.
func (v *ContentsValidator) checkBranch(branch string) error {
	if branch == "" || v.branch == "" || branch == v.branch {
		return nil
	}
	return ErrUnknownBranch
}

// DecodeContent decodes a base64 body, accepting the line-wrapped encoding
// git hosts produce.
func DecodeContent(s string) ([]byte, error) {
	s = strings.NewReplacer("\n", "", "\r", "").Replace(s)
	return base64.StdEncoding.DecodeString(s)
}

func isBlobID(sha string) bool {
	if len(sha) != blobIDLength {
		return false
	}
	for _, c := range sha {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
