// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the write requests the file server accepts
// before they reach storage.
//
// A Validator validates a whole request, or only the fields named in the
// call:
//
//	err := v.Validate(ctx, req)                      // every rule
//	err := v.Validate(ctx, req, validators.FieldSHA) // one rule
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
