package drive

import "google.golang.org/api/drive/v3"

// File is the slice of Drive file metadata the gallery works with. All state
// the application keeps about a photo lives in Name.
type File struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType,omitempty"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	// IsVideo is set when Drive reports video media metadata for the file.
	// Videos show up in albums but are never eligible as covers.
	IsVideo bool `json:"isVideo,omitempty"`
}

func fromAPI(f *drive.File) File {
	return File{
		ID:            f.Id,
		Name:          f.Name,
		MimeType:      f.MimeType,
		ThumbnailLink: f.ThumbnailLink,
		IsVideo:       f.VideoMediaMetadata != nil,
	}
}
