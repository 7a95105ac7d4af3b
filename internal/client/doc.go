// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client runs the interactive vault client: it checks the server
// and hands the terminal over to the TUI.
package client
