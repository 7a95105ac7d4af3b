// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/backup"
	"github.com/MKhiriev/go-file-vault/internal/logger"
)

// Archiver prepares the archive of a backup job.
type Archiver interface {
	Create(ctx context.Context, job backup.Job) (path string, cleanup func(), err error)
}

// BackupWorker drains a buffered queue of backup jobs. Each job is archived
// once and handed to every sender; a failing sender is logged and never
// affects the others or the vault destruction that queued the job.
type BackupWorker struct {
	jobs     chan backup.Job
	archiver Archiver
	senders  []backup.Sender
	logger   *logger.Logger

	// drainTimeout bounds the delivery of jobs still queued at shutdown.
	drainTimeout time.Duration
}

const defaultDrainTimeout = 5 * time.Second

func NewBackupWorker(archiver Archiver, senders []backup.Sender, queueSize int, log *logger.Logger) *BackupWorker {
	if queueSize < 1 {
		queueSize = 1
	}
	return &BackupWorker{
		jobs:     make(chan backup.Job, queueSize),
		archiver: archiver,
		senders:  senders,
		logger:   log,

		drainTimeout: defaultDrainTimeout,
	}
}

// Enqueue schedules job without blocking. It reports false when the queue is
// full.
func (w *BackupWorker) Enqueue(job backup.Job) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		w.logger.Warn().Str("email", job.Email).Msg("backup queue is full, job dropped")
		return false
	}
}

func (w *BackupWorker) Run(ctx context.Context) {
	w.logger.Info().Int("senders", len(w.senders)).Msg("backup worker started")
	for {
		select {
		case <-ctx.Done():
			w.drain()
			w.logger.Info().Msg("backup worker stopped")
			return
		case job := <-w.jobs:
			w.process(ctx, job)
		}
	}
}

// drain delivers the jobs queued before shutdown. The parent context is
// already canceled, so the jobs run under a fresh deadline.
func (w *BackupWorker) drain() {
	if len(w.jobs) == 0 {
		return
	}
	w.logger.Info().Int("pending", len(w.jobs)).Dur("deadline", w.drainTimeout).Msg("draining backup queue")

	ctx, cancel := context.WithTimeout(context.Background(), w.drainTimeout)
	defer cancel()

	for ctx.Err() == nil {
		select {
		case job := <-w.jobs:
			w.process(ctx, job)
		default:
			return
		}
	}
	w.logger.Warn().Int("dropped", len(w.jobs)).Msg("backup drain deadline passed")
}

func (w *BackupWorker) process(ctx context.Context, job backup.Job) {
	log := w.logger.With().Str("email", job.Email).Int("files", len(job.Files)).Logger()

	if len(w.senders) == 0 {
		log.Info().Msg("no backup senders configured, skipping backup")
		return
	}

	path, cleanup, err := w.archiver.Create(ctx, job)
	defer cleanup()
	if err != nil {
		log.Err(err).Msg("failed to create backup archive")
		return
	}
	job.ArchivePath = path

	for _, sender := range w.senders {
		if err := sender.Send(ctx, job); err != nil {
			log.Err(err).Str("sender", sender.Name()).Msg("backup delivery failed")
			continue
		}
		log.Info().Str("sender", sender.Name()).Msg("backup delivered")
	}
}
