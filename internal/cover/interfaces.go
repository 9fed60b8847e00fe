package cover

import (
	"context"

	"github.com/programista-nautil/galeria-app/internal/drive"
)

// Drive is the slice of the drive client the cover state machine needs.
type Drive interface {
	ListFiles(ctx context.Context, q drive.Query) ([]drive.File, error)
	GetFile(ctx context.Context, fileID string) (drive.File, error)
	Rename(ctx context.Context, fileID, newName string) error
}
