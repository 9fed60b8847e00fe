package compress

import (
	"context"

	"github.com/programista-nautil/galeria-app/internal/drive"
)

// Drive is the slice of the drive client the compression task needs.
type Drive interface {
	ListFiles(ctx context.Context, q drive.Query) ([]drive.File, error)
	DownloadBytes(ctx context.Context, fileID string) ([]byte, error)
	UpdateContent(ctx context.Context, fileID, newName, mimeType string, content []byte) error
}

// FolderResolver maps the signed-in user to their client folder, for the
// bulk-compress trigger.
type FolderResolver interface {
	ClientFolderID(ctx context.Context, email string) (string, error)
}
