package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/MKhiriev/go-file-vault/internal/config"
)

const archiveMimeType = "application/zip"

// DriveSender uploads backup archives to a Google Drive folder using a
// service account.
type DriveSender struct {
	files    *drive.FilesService
	folderID string
}

// NewDriveSender reads the service account key from cfg and builds an
// authorised client. Tokens are fetched lazily on the first upload.
func NewDriveSender(ctx context.Context, cfg config.Drive) (*DriveSender, error) {
	key, err := os.ReadFile(cfg.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDriveKey, err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(key, drive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDriveKey, err)
	}

	return newDriveSender(ctx, cfg.ParentFolderID, option.WithHTTPClient(jwtConfig.Client(ctx)))
}

func newDriveSender(ctx context.Context, folderID string, opts ...option.ClientOption) (*DriveSender, error) {
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	return &DriveSender{
		files:    srv.Files,
		folderID: folderID,
	}, nil
}

func (d *DriveSender) Name() string {
	return "drive"
}

// Send uploads the archive and returns once Drive has acknowledged the new
// file.
func (d *DriveSender) Send(ctx context.Context, job Job) error {
	if job.ArchivePath == "" {
		return ErrNoArchive
	}
	archive, err := os.Open(job.ArchivePath)
	if err != nil {
		return fmt.Errorf("read backup archive: %w", err)
	}
	defer archive.Close()

	meta := &drive.File{
		Name:     filepath.Base(job.ArchivePath),
		MimeType: archiveMimeType,
	}
	if d.folderID != "" {
		meta.Parents = []string{d.folderID}
	}

	created, err := d.files.Create(meta).
		Media(archive, googleapi.ContentType(archiveMimeType)).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: status %d: %s", ErrDriveUploadError, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%w: %w", ErrDriveUploadError, err)
	}
	if created.Id == "" {
		return fmt.Errorf("%w: empty file id", ErrDriveUploadError)
	}
	return nil
}
