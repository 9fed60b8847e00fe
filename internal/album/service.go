// Package album lists, creates and serves client albums. An album is a child
// folder of the client's Drive folder; its display title and date come from
// the "YYYY-MM-DD " prefix of the folder name.
package album

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/programista-nautil/galeria-app/internal/drive"
	"github.com/programista-nautil/galeria-app/pkg/markers"
)

type Service struct {
	drive      Drive
	resolver   FolderResolver
	cover      CoverSetter
	compressor Compressor
	logger     *log.Logger
}

func NewService(driveClient Drive, resolver FolderResolver, cover CoverSetter, compressor Compressor) *Service {
	return &Service{
		drive:      driveClient,
		resolver:   resolver,
		cover:      cover,
		compressor: compressor,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "album"}),
	}
}

// Albums returns the client's albums, newest first. Undated folders sort
// after dated ones, alphabetically.
func (s *Service) Albums(ctx context.Context, email string) ([]Album, error) {
	clientFolderID, err := s.resolver.ClientFolderID(ctx, email)
	if err != nil {
		return nil, err
	}

	folders, err := s.drive.ListFiles(ctx, drive.Query{
		ParentID:    clientFolderID,
		FoldersOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	type datedAlbum struct {
		Album
		day   time.Time
		dated bool
	}

	albums := make([]datedAlbum, 0, len(folders))
	for _, folder := range folders {
		day, title, dated := markers.SplitDatePrefix(folder.Name)

		a := datedAlbum{
			Album: Album{
				ID:             folder.ID,
				Name:           folder.Name,
				Title:          title,
				CoverThumbnail: s.coverThumbnail(ctx, folder.ID),
			},
			day:   day,
			dated: dated,
		}
		if dated {
			a.Date = day.Format("2006-01-02")
		}
		albums = append(albums, a)
	}

	sort.SliceStable(albums, func(i, j int) bool {
		if albums[i].dated != albums[j].dated {
			return albums[i].dated
		}
		if albums[i].dated {
			return albums[i].day.After(albums[j].day)
		}
		return albums[i].Title < albums[j].Title
	})

	out := make([]Album, len(albums))
	for i, a := range albums {
		out[i] = a.Album
	}
	return out, nil
}

// coverThumbnail finds a thumbnail for the album card: the cover-marked file
// when there is one, otherwise the first image. A lookup failure just leaves
// the card without a picture.
func (s *Service) coverThumbnail(ctx context.Context, albumID string) string {
	covers, err := s.drive.ListFiles(ctx, drive.Query{
		ParentID:     albumID,
		ImagesOnly:   true,
		NameContains: markers.Cover,
		PageSize:     1,
	})
	if err != nil {
		s.logger.Warn("cover lookup failed", "album", albumID, "error", err)
		return ""
	}
	if len(covers) > 0 {
		return covers[0].ThumbnailLink
	}

	images, err := s.drive.ListFiles(ctx, drive.Query{
		ParentID:   albumID,
		ImagesOnly: true,
		PageSize:   1,
	})
	if err != nil || len(images) == 0 {
		return ""
	}
	return images[0].ThumbnailLink
}

// Photos lists the album's image files. When the album has no cover yet the
// first non-video photo is promoted on the spot, so every viewed album ends
// up with exactly one marked file. A failed promotion only logs; the listing
// itself still succeeds.
func (s *Service) Photos(ctx context.Context, folderID string) ([]Photo, error) {
	files, err := s.drive.ListFiles(ctx, drive.Query{
		ParentID:   folderID,
		ImagesOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	photos := make([]Photo, 0, len(files))
	for _, f := range files {
		photos = append(photos, Photo{
			ID:            f.ID,
			Name:          f.Name,
			ThumbnailLink: f.ThumbnailLink,
			IsVideo:       f.IsVideo,
		})
	}

	s.ensureCover(ctx, folderID, photos)

	return photos, nil
}

func (s *Service) ensureCover(ctx context.Context, folderID string, photos []Photo) {
	for _, p := range photos {
		if markers.Has(p.Name, markers.Cover) {
			return
		}
	}

	for i, p := range photos {
		if p.IsVideo {
			continue
		}
		newName, err := s.cover.SetInitialCover(ctx, folderID, p.ID)
		if err != nil {
			s.logger.Error("failed to auto-set cover on initial load", "album", folderID, "error", err)
			return
		}
		photos[i].Name = newName
		return
	}
}

// CreateAlbum creates a dated folder under the client's folder, uploads the
// photos into it and queues background compression for the new album.
func (s *Service) CreateAlbum(ctx context.Context, email, title string, uploads []Upload) (string, error) {
	clientFolderID, err := s.resolver.ClientFolderID(ctx, email)
	if err != nil {
		return "", err
	}

	folderName := markers.AlbumFolderName(title, time.Now())
	albumID, err := s.drive.CreateFolder(ctx, folderName, clientFolderID)
	if err != nil {
		return "", fmt.Errorf("failed to create album folder: %w", err)
	}

	for _, upload := range uploads {
		name := upload.Name
		if name == "" {
			name = "unnamed-photo.jpg"
		}
		mimeType := upload.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		if _, err := s.drive.UploadFile(ctx, albumID, name, mimeType, upload.Content); err != nil {
			return "", fmt.Errorf("failed to upload %s: %w", name, err)
		}
	}

	jobID := s.compressor.CompressAlbum(albumID)
	s.logger.Info("album created", "album", albumID, "name", folderName,
		"photos", len(uploads), "compressionJob", jobID)

	return albumID, nil
}

// Stream opens a passthrough byte stream for the file. The caller owns the
// reader. An empty upstream content type falls back to video/mp4, matching
// the player on the album page.
func (s *Service) Stream(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	body, contentType, err := s.drive.Download(ctx, fileID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open stream for %s: %w", fileID, err)
	}
	if contentType == "" {
		contentType = "video/mp4"
	}
	return body, contentType, nil
}
