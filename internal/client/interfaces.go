// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is a runnable vault client. Run blocks until the user leaves or
// ctx is cancelled; leaving on purpose is not an error.
type Client interface {
	Run(ctx context.Context) error
}
