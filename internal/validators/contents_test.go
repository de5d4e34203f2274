// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/MKhiriev/go-track-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var blobID = strings.Repeat("ab", 20)

func validPut() models.PutContentRequest {
	return models.PutContentRequest{
		Message: "update goals",
		Content: base64.StdEncoding.EncodeToString([]byte(`{"a":1}`)),
		SHA:     blobID,
		Branch:  "main",
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewContentsValidator("main")
	ctx := context.Background()
	put := validPut()

	assert.NoError(t, v.Validate(ctx, put))
	assert.NoError(t, v.Validate(ctx, &put))
	assert.NoError(t, v.Validate(ctx, models.DeleteContentRequest{SHA: blobID}))
	assert.NoError(t, v.Validate(ctx, &models.DeleteContentRequest{SHA: blobID}))

	assert.ErrorIs(t, v.Validate(ctx, "data/a.json"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, put, "message"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// TestValidate_Put
// ---------------------------------------------------------------------------

func TestValidate_Put(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.PutContentRequest)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.PutContentRequest) {}},
		{name: "create without sha", mutate: func(r *models.PutContentRequest) { r.SHA = "" }},
		{name: "default branch", mutate: func(r *models.PutContentRequest) { r.Branch = "" }},
		{
			name:   "line wrapped content",
			mutate: func(r *models.PutContentRequest) { r.Content = r.Content[:4] + "\n" + r.Content[4:] },
		},
		{
			name:    "content not base64",
			mutate:  func(r *models.PutContentRequest) { r.Content = "!!!" },
			wantErr: ErrInvalidContent,
		},
		{
			name:    "short sha",
			mutate:  func(r *models.PutContentRequest) { r.SHA = "abc" },
			wantErr: ErrInvalidSHA,
		},
		{
			name:    "upper case sha",
			mutate:  func(r *models.PutContentRequest) { r.SHA = strings.ToUpper(blobID) },
			wantErr: ErrInvalidSHA,
		},
		{
			name:    "other branch",
			mutate:  func(r *models.PutContentRequest) { r.Branch = "dev" },
			wantErr: ErrUnknownBranch,
		},
		{
			name:   "only the named field is checked",
			mutate: func(r *models.PutContentRequest) { r.Content = "!!!" },
			fields: []string{FieldSHA, FieldBranch},
		},
	}

	v := NewContentsValidator("main")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPut()
			tt.mutate(&req)

			err := v.Validate(context.Background(), req, tt.fields...)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_Delete
// ---------------------------------------------------------------------------

func TestValidate_Delete(t *testing.T) {
	v := NewContentsValidator("main")
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.DeleteContentRequest{}), ErrShaRequired)
	assert.ErrorIs(t, v.Validate(ctx, models.DeleteContentRequest{SHA: "s1"}), ErrInvalidSHA)
	assert.ErrorIs(t, v.Validate(ctx, models.DeleteContentRequest{SHA: blobID, Branch: "dev"}), ErrUnknownBranch)
	assert.NoError(t, v.Validate(ctx, models.DeleteContentRequest{SHA: blobID, Branch: "main"}))
}

func TestValidate_AnyBranchWithoutDefault(t *testing.T) {
	v := NewContentsValidator("")

	put := validPut()
	put.Branch = "feature"
	assert.NoError(t, v.Validate(context.Background(), put))
}

func TestDecodeContent(t *testing.T) {
	got, err := DecodeContent("eyJh\r\nIjox\nfQ==")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	_, err = DecodeContent("%%%")
	assert.Error(t, err)
}
