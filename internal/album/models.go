package album

// Album is one client-visible album folder. Title and Date are derived from
// the folder name's date prefix; Name keeps the raw folder name.
type Album struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Date           string `json:"date,omitempty"`
	CoverThumbnail string `json:"coverThumbnail,omitempty"`
}

// Photo is one file inside an album.
type Photo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	IsVideo       bool   `json:"isVideo"`
}

// Upload is one incoming multipart file for album creation.
type Upload struct {
	Name     string
	MimeType string
	Content  []byte
}

// CreateAlbumResponse is returned by POST /create-album.
type CreateAlbumResponse struct {
	Success            bool   `json:"success"`
	AlbumID            string `json:"albumId"`
	UploadedFilesCount int    `json:"uploadedFilesCount"`
}
