package album

import (
	"context"
	"io"

	"github.com/programista-nautil/galeria-app/internal/drive"
)

// Drive is the slice of the storage client the album service needs.
type Drive interface {
	ListFiles(ctx context.Context, q drive.Query) ([]drive.File, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, string, error)
	CreateFolder(ctx context.Context, name, parentID string) (string, error)
	UploadFile(ctx context.Context, parentID, name, mimeType string, content []byte) (string, error)
}

// FolderResolver maps an authenticated user to their client folder.
type FolderResolver interface {
	ClientFolderID(ctx context.Context, email string) (string, error)
}

// CoverSetter assigns the cover marker when an album has none yet.
type CoverSetter interface {
	SetInitialCover(ctx context.Context, folderID, fileID string) (string, error)
}

// Compressor queues background compression for a freshly created album.
type Compressor interface {
	CompressAlbum(albumID string) string
}
