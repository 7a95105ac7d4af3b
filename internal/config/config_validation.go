// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

// validate checks that the server view carries everything needed at
// startup: both secrets, storage locations and listen addresses.
func (cfg *ServerConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.KeyHashKey == "" || cfg.App.MaxFailedAttempts < 1 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.LiveDir == "" || cfg.Storage.Files.DestroyedDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.BackupQueueSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Session.DSN == "" || strings.Contains(cfg.Session.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	u, err := url.Parse(cfg.Adapter.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
