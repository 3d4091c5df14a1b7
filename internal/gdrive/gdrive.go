// Package gdrive uploads invoice PDFs to Google Drive using OAuth2
// user credentials (client id/secret plus a stored refresh token).
package gdrive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/rigalabs/invoice-manager/internal/settings"
)

const scopeDriveFile = "https://www.googleapis.com/auth/drive.file"

// Configured reports whether Drive upload credentials are present.
func Configured(cfg settings.Settings) bool {
	return cfg.GDriveClientID != "" &&
		cfg.GDriveClientSecret != "" &&
		cfg.GDriveRefreshToken != ""
}

func service(ctx context.Context, cfg settings.Settings) (*drive.Service, error) {
	oc := &oauth2.Config{
		ClientID:     cfg.GDriveClientID,
		ClientSecret: cfg.GDriveClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{scopeDriveFile},
	}
	token := &oauth2.Token{RefreshToken: cfg.GDriveRefreshToken}
	client := oc.Client(ctx, token)
	return drive.NewService(ctx, option.WithHTTPClient(client))
}

// Upload stores a PDF in the configured Drive folder. An existing file
// with the same name in that folder is replaced.
func Upload(ctx context.Context, cfg settings.Settings, data []byte, filename string) error {
	if !Configured(cfg) {
		return fmt.Errorf("google drive credentials are not configured")
	}

	svc, err := service(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create drive service: %w", err)
	}

	query := fmt.Sprintf("name = '%s' and trashed = false", filename)
	if cfg.GDriveFolderID != "" {
		query += fmt.Sprintf(" and '%s' in parents", cfg.GDriveFolderID)
	}
	existing, err := svc.Files.List().Q(query).Fields("files(id)").Context(ctx).Do()
	if err == nil {
		for _, f := range existing.Files {
			if err := svc.Files.Delete(f.Id).Context(ctx).Do(); err != nil {
				log.Warn().Err(err).Str("file", filename).Msg("could not delete previous drive copy")
			}
		}
	}

	meta := &drive.File{Name: filename, MimeType: "application/pdf"}
	if cfg.GDriveFolderID != "" {
		meta.Parents = []string{cfg.GDriveFolderID}
	}
	_, err = svc.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("drive upload %s: %w", filename, err)
	}

	log.Info().Str("file", filename).Msg("uploaded to google drive")
	return nil
}
