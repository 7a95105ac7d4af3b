// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/MKhiriev/go-file-vault/models"
)

// renderBuildInfoWindow is the F1 window: build metadata plus a reminder of
// what the vault does with files.
func renderBuildInfoWindow(info models.AppBuildInfo) string {
	body := fmt.Sprintf("Application │ Secure File Vault\nVersion     │ %s\nDate        │ %s\nCommit      │ %s\n\n%s",
		info.BuildVersion(), info.BuildDate(), info.BuildCommit(),
		helpStyle.Render("Files are encrypted by the server with a key derived from your vault key."))

	return renderPage("ABOUT", body, "esc/f1: back │ ctrl+c: quit")
}
