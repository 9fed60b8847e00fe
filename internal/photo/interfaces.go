package photo

import "context"

// Drive is the slice of the storage client the photo service needs.
type Drive interface {
	DownloadBytes(ctx context.Context, fileID string) ([]byte, error)
	UpdateContent(ctx context.Context, fileID, newName, mimeType string, content []byte) error
}
