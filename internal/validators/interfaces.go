// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks vault API requests before they reach the
// services.
//
// A Validator accepts any of the request models and, optionally, a list of
// field names restricting the check to those fields. Without field names
// every field the request type requires is checked.
package validators

import "context"

// Validator validates the provided input and optionally restricts validation
// to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
