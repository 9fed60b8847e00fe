// Package cover maintains the one-cover-per-album convention. The cover is
// whichever file in the album folder carries the "_cover" marker in its name;
// there is no other record of it.
package cover

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/programista-nautil/galeria-app/internal/drive"
	"github.com/programista-nautil/galeria-app/pkg/markers"
)

type Service struct {
	drive  Drive
	logger *log.Logger
}

func NewService(driveClient Drive) *Service {
	return &Service{
		drive:  driveClient,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "cover"}),
	}
}

// SetCover makes fileID the album's cover. It runs in two phases: first every
// file currently carrying the marker is stripped of it, then the marker is
// applied to the target. The phases are independent rename calls; a crash in
// between leaves the album with no cover, which the next album view repairs.
func (s *Service) SetCover(ctx context.Context, folderID, fileID string) (string, error) {
	oldCovers, err := s.drive.ListFiles(ctx, drive.Query{
		ParentID:     folderID,
		NameContains: markers.Cover,
	})
	if err != nil {
		return "", fmt.Errorf("failed to list current covers: %w", err)
	}

	for _, oldCover := range oldCovers {
		stripped := markers.Strip(oldCover.Name, markers.Cover)
		if err := s.drive.Rename(ctx, oldCover.ID, stripped); err != nil {
			return "", fmt.Errorf("failed to clear cover from %s: %w", oldCover.Name, err)
		}
	}

	return s.applyCover(ctx, fileID)
}

// SetInitialCover applies the marker to fileID without clearing anything
// first. Used when an album is viewed and has no cover yet.
func (s *Service) SetInitialCover(ctx context.Context, folderID, fileID string) (string, error) {
	newName, err := s.applyCover(ctx, fileID)
	if err != nil {
		return "", err
	}
	s.logger.Info("assigned initial cover", "album", folderID, "file", fileID, "name", newName)
	return newName, nil
}

func (s *Service) applyCover(ctx context.Context, fileID string) (string, error) {
	file, err := s.drive.GetFile(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("could not get file name: %w", err)
	}

	coverName := markers.Apply(file.Name, markers.Cover)
	if err := s.drive.Rename(ctx, fileID, coverName); err != nil {
		return "", fmt.Errorf("failed to rename %s: %w", file.Name, err)
	}

	return coverName, nil
}
