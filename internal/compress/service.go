// Package compress implements the per-album photo compression task: every
// image in an album that does not yet carry the "_compressed" marker is
// downloaded, re-encoded smaller, renamed and re-uploaded, one file at a
// time. A failure on one photo never halts the batch.
package compress

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/programista-nautil/galeria-app/internal/drive"
	"github.com/programista-nautil/galeria-app/internal/images"
	"github.com/programista-nautil/galeria-app/pkg/markers"
)

type Service struct {
	drive      Drive
	resolver   FolderResolver
	jobManager *JobManager
	logger     *log.Logger
}

func NewService(driveClient Drive, resolver FolderResolver) *Service {
	return &Service{
		drive:      driveClient,
		resolver:   resolver,
		jobManager: NewJobManager(),
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "compress"}),
	}
}

// CompressAlbum launches the background compression loop for one album and
// returns the job ID to poll. The caller does not wait for completion. When a
// job for the album is already running, its ID is returned instead of
// starting a second loop over the same files.
func (s *Service) CompressAlbum(albumID string) string {
	jobID, started := s.jobManager.Start(albumID)
	if !started {
		s.logger.Info("compression already running for album", "album", albumID, "job", jobID)
		return jobID
	}

	// Detached on purpose: the loop outlives the triggering request and is
	// bounded only by the process lifetime.
	go s.run(context.Background(), jobID, albumID)

	return jobID
}

func (s *Service) run(ctx context.Context, jobID, albumID string) {
	s.logger.Info("starting compression", "album", albumID, "job", jobID)

	photos, err := s.drive.ListFiles(ctx, drive.Query{
		ParentID:            albumID,
		ImagesOnly:          true,
		ExcludeNameContains: markers.Compressed,
	})
	if err != nil {
		s.logger.Error("compression failed to list album", "album", albumID, "err", err)
		s.jobManager.MarkFailed(jobID, err.Error())
		return
	}

	if len(photos) == 0 {
		s.logger.Info("no photos to compress", "album", albumID)
		s.jobManager.MarkCompleted(jobID)
		return
	}

	s.logger.Info("found photos to compress", "album", albumID, "count", len(photos))
	s.jobManager.SetTotal(jobID, len(photos))

	for _, photo := range photos {
		newName, err := s.compressOne(ctx, photo.ID, photo.Name)
		if err != nil {
			// One bad photo must not halt the batch.
			s.logger.Error("failed to compress photo", "album", albumID, "file", photo.Name, "err", err)
			s.jobManager.RecordFailure(jobID)
			continue
		}
		s.logger.Info("compressed photo", "file", photo.Name, "newName", newName)
		s.jobManager.RecordSuccess(jobID)
	}

	s.jobManager.MarkCompleted(jobID)

	status, _ := s.jobManager.Get(jobID)
	s.logger.Info("finished compression", "album", albumID, "processed", status.Processed, "failed", status.Failed)
}

// CompressFile compresses a single photo synchronously, for the
// request-scoped endpoint. Returns the file's new name.
func (s *Service) CompressFile(ctx context.Context, fileID, fileName string) (string, error) {
	return s.compressOne(ctx, fileID, fileName)
}

func (s *Service) compressOne(ctx context.Context, fileID, fileName string) (string, error) {
	data, err := s.drive.DownloadBytes(ctx, fileID)
	if err != nil {
		return "", err
	}

	compressed, err := images.Compress(data)
	if err != nil {
		return "", err
	}

	newName := markers.Apply(fileName, markers.Compressed)
	if err := s.drive.UpdateContent(ctx, fileID, newName, "image/jpeg", compressed); err != nil {
		return "", err
	}

	return newName, nil
}

// ListUncompressed lists the photos in a folder the compression task would
// still pick up.
func (s *Service) ListUncompressed(ctx context.Context, folderID string) ([]drive.File, error) {
	return s.drive.ListFiles(ctx, drive.Query{
		ParentID:            folderID,
		ImagesOnly:          true,
		ExcludeNameContains: markers.Compressed,
	})
}

// BulkCompress launches a compression job for every album in the user's
// client folder. Each album runs its own independent sequential loop.
func (s *Service) BulkCompress(ctx context.Context, email string) ([]string, error) {
	clientFolderID, err := s.resolver.ClientFolderID(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("could not resolve client folder: %w", err)
	}

	albums, err := s.drive.ListFiles(ctx, drive.Query{
		ParentID:    clientFolderID,
		FoldersOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	jobIDs := make([]string, 0, len(albums))
	for _, album := range albums {
		jobIDs = append(jobIDs, s.CompressAlbum(album.ID))
	}

	return jobIDs, nil
}

// JobStatus exposes the job manager's snapshot for the status endpoint.
func (s *Service) JobStatus(jobID string) (*JobStatus, bool) {
	return s.jobManager.Get(jobID)
}
