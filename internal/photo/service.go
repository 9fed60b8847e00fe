// Package photo implements single-photo edits. The only one today is the 90°
// clockwise rotation, applied synchronously in place.
package photo

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/programista-nautil/galeria-app/internal/images"
)

type Service struct {
	drive  Drive
	logger *log.Logger
}

func NewService(driveClient Drive) *Service {
	return &Service{
		drive:  driveClient,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "photo"}),
	}
}

// Rotate downloads the photo, turns it 90° clockwise and overwrites the
// stored content. The file keeps its name; rotation carries no marker.
func (s *Service) Rotate(ctx context.Context, fileID string) error {
	data, err := s.drive.DownloadBytes(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to download photo %s: %w", fileID, err)
	}

	rotated, err := images.Rotate90(data)
	if err != nil {
		return fmt.Errorf("failed to rotate photo %s: %w", fileID, err)
	}

	if err := s.drive.UpdateContent(ctx, fileID, "", "image/jpeg", rotated); err != nil {
		return fmt.Errorf("failed to store rotated photo %s: %w", fileID, err)
	}

	s.logger.Info("rotated photo", "file", fileID)
	return nil
}
