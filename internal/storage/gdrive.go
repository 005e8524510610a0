package storage

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const gdriveViewURL = "https://drive.google.com/uc?export=view&id="

// GDriveUploader stores files in a Google Drive folder using a service account.
type GDriveUploader struct {
	files    *drive.FilesService
	perms    *drive.PermissionsService
	folderID string
}

// NewGDriveUploader creates a Drive client from a service-account credentials file.
func NewGDriveUploader(ctx context.Context, credentialsFile, folderID string) (*GDriveUploader, error) {
	if credentialsFile == "" {
		return nil, errors.New("google drive credentials file is not set")
	}
	srv, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsFile), option.WithScopes(drive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("init google drive: %w", err)
	}
	return &GDriveUploader{files: srv.Files, perms: srv.Permissions, folderID: folderID}, nil
}

func (u *GDriveUploader) Provider() string { return ProviderGDrive }

// Upload creates the file in the configured folder and shares it read-only
// with anyone holding the link, so it can be embedded in public pages.
func (u *GDriveUploader) Upload(ctx context.Context, obj Object) (*Stored, error) {
	meta := &drive.File{Name: obj.Name, MimeType: obj.ContentType}
	if u.folderID != "" {
		meta.Parents = []string{u.folderID}
	}

	f, err := u.files.Create(meta).Media(obj.Body).Fields("id").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("drive create: %w", err)
	}

	if _, err := u.perms.Create(f.Id, &drive.Permission{Type: "anyone", Role: "reader"}).Context(ctx).Do(); err != nil {
		_ = u.files.Delete(f.Id).Context(ctx).Do()
		return nil, fmt.Errorf("drive share: %w", err)
	}

	return &Stored{ExternalID: f.Id, URL: gdriveViewURL + f.Id}, nil
}

// Delete removes the file by Drive file id.
func (u *GDriveUploader) Delete(ctx context.Context, externalID string) error {
	if err := u.files.Delete(externalID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("drive delete: %w", err)
	}
	return nil
}
