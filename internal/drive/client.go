// Package drive wraps the gallery's single authenticated handle to the Google
// Drive API. The client impersonates the gallery owner through a
// service-account key with domain-wide delegation, so every feature talks to
// the same shared drive regardless of which client is signed in.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// listFields is the metadata slice requested on every listing call.
const listFields = "files(id, name, mimeType, thumbnailLink, videoMediaMetadata)"

// maxPageSize caps a single listing. The gallery never paginates past it; an
// album larger than this is not a supported case.
const maxPageSize int64 = 1000

// Client is the gallery's handle to the Drive API.
type Client struct {
	svc *drivev3.Service
}

// NewClient builds the authenticated Drive handle from a service-account key
// file. When subject is non-empty the client acts as that user via domain-wide
// delegation.
func NewClient(ctx context.Context, credentialsFile, subject string) (*Client, error) {
	keyJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("could not read service account key: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(keyJSON, drivev3.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("could not parse service account key: %w", err)
	}
	jwtConfig.Subject = subject

	svc, err := drivev3.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("could not create drive service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// ListFiles runs a single Files.List call for the query and returns the
// matching files. Page size defaults to the cap when unset.
func (c *Client) ListFiles(ctx context.Context, q Query) ([]File, error) {
	pageSize := q.PageSize
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var list *drivev3.FileList
	err := withRetry(ctx, func() error {
		call := c.svc.Files.List().
			Context(ctx).
			Q(q.build()).
			Fields(googleapi.Field(listFields)).
			PageSize(pageSize)
		if q.OrderBy != "" {
			call = call.OrderBy(q.OrderBy)
		}
		var callErr error
		list, callErr = call.Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]File, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, fromAPI(f))
	}
	return files, nil
}

// GetFile fetches the current metadata of a single file.
func (c *Client) GetFile(ctx context.Context, fileID string) (File, error) {
	var f *drivev3.File
	err := withRetry(ctx, func() error {
		var callErr error
		f, callErr = c.svc.Files.Get(fileID).
			Context(ctx).
			Fields("id, name, mimeType, thumbnailLink, videoMediaMetadata").
			Do()
		return callErr
	})
	if err != nil {
		return File{}, fmt.Errorf("unable to get metadata for file %s: %w", fileID, err)
	}
	return fromAPI(f), nil
}

// Rename updates only the file's name.
func (c *Client) Rename(ctx context.Context, fileID, newName string) error {
	err := withRetry(ctx, func() error {
		_, callErr := c.svc.Files.Update(fileID, &drivev3.File{Name: newName}).
			Context(ctx).
			Fields("id, name").
			Do()
		return callErr
	})
	if err != nil {
		return fmt.Errorf("unable to rename file %s: %w", fileID, err)
	}
	return nil
}

// Download opens the file content as a stream along with its content type.
// Only the call setup is retried; the caller owns the returned body.
func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	var body io.ReadCloser
	var contentType string
	err := withRetry(ctx, func() error {
		resp, callErr := c.svc.Files.Get(fileID).Context(ctx).Download()
		if callErr != nil {
			return callErr
		}
		body = resp.Body
		contentType = resp.Header.Get("Content-Type")
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("unable to download file %s: %w", fileID, err)
	}
	return body, contentType, nil
}

// DownloadBytes reads the whole file content into memory, for the transform
// paths that need the full image anyway.
func (c *Client) DownloadBytes(ctx context.Context, fileID string) ([]byte, error) {
	body, _, err := c.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("unable to read content of file %s: %w", fileID, err)
	}
	return content, nil
}

// UpdateContent overwrites the file's binary content, and its name when
// newName is non-empty, in one update call. Content is taken as a byte slice
// so a retried attempt re-reads it from the start.
func (c *Client) UpdateContent(ctx context.Context, fileID, newName, mimeType string, content []byte) error {
	err := withRetry(ctx, func() error {
		meta := &drivev3.File{}
		if newName != "" {
			meta.Name = newName
		}
		_, callErr := c.svc.Files.Update(fileID, meta).
			Context(ctx).
			Media(bytes.NewReader(content), googleapi.ContentType(mimeType)).
			Fields("id, name").
			Do()
		return callErr
	})
	if err != nil {
		return fmt.Errorf("unable to update content of file %s: %w", fileID, err)
	}
	return nil
}

// CreateFolder creates a folder under the given parent and returns its ID.
func (c *Client) CreateFolder(ctx context.Context, name, parentID string) (string, error) {
	var created *drivev3.File
	err := withRetry(ctx, func() error {
		var callErr error
		created, callErr = c.svc.Files.Create(&drivev3.File{
			Name:     name,
			MimeType: folderMimeType,
			Parents:  []string{parentID},
		}).Context(ctx).Fields("id").Do()
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("unable to create folder '%s': %w", name, err)
	}
	return created.Id, nil
}

// UploadFile creates a new file with the given content under the parent
// folder and returns its ID.
func (c *Client) UploadFile(ctx context.Context, parentID, name, mimeType string, content []byte) (string, error) {
	var created *drivev3.File
	err := withRetry(ctx, func() error {
		var callErr error
		created, callErr = c.svc.Files.Create(&drivev3.File{
			Name:    name,
			Parents: []string{parentID},
		}).
			Context(ctx).
			Media(bytes.NewReader(content), googleapi.ContentType(mimeType)).
			Fields("id").
			Do()
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file '%s': %w", name, err)
	}
	return created.Id, nil
}
