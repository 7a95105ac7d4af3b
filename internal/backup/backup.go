// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package backup ships the quarantined files of a destroyed vault to its
// owner. A Job names the files; the Archiver zips them and every configured
// Sender delivers the archive.
package backup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
)

var (
	ErrNoArchive        = errors.New("backup job has no archive")
	ErrSenderFailed     = errors.New("backup sender failed")
	ErrInvalidDriveKey  = errors.New("invalid drive service account key")
	ErrDriveUploadError = errors.New("drive upload failed")
)

// Job describes the backup of one destroyed vault.
type Job struct {
	Email         string
	RecoveryToken string

	// Files are the quarantined file names inside the destroyed directory.
	Files []string

	// ArchivePath is filled in by the Archiver before the job is sent.
	ArchivePath string
}

// Sender delivers a prepared backup archive somewhere.
type Sender interface {
	Name() string
	Send(ctx context.Context, job Job) error
}

// NewSenders returns a sender for every destination configured in cfg.
func NewSenders(cfg config.Backup, log *logger.Logger) ([]Sender, error) {
	var senders []Sender

	if email := NewEmailSender(cfg.SMTP); email.IsConfigured() {
		senders = append(senders, email)
	} else {
		log.Info().Msg("smtp is not configured, backup mails are disabled")
	}

	if strings.TrimSpace(cfg.Drive.ServiceAccountFile) != "" {
		drive, err := NewDriveSender(context.Background(), cfg.Drive)
		if err != nil {
			return nil, fmt.Errorf("drive sender: %w", err)
		}
		senders = append(senders, drive)
	}

	return senders, nil
}
