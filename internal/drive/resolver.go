package drive

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoFolderMapping      = errors.New("no client folder mapping for user")
	ErrRootFolderNotFound   = errors.New("gallery root folder not found")
	ErrClientFolderNotFound = errors.New("client folder not found")
)

// Lister is the listing slice of the drive client the resolver needs.
type Lister interface {
	ListFiles(ctx context.Context, q Query) ([]File, error)
}

// Resolver maps an authenticated user's email to their namespace folder under
// the shared gallery root. The mapping itself is configuration; the folder IDs
// are looked up on every call so that folders moved or recreated in Drive are
// picked up without a restart.
type Resolver struct {
	drive         Lister
	rootName      string
	clientFolders map[string]string
}

func NewResolver(drive Lister, rootName string, clientFolders map[string]string) *Resolver {
	return &Resolver{
		drive:         drive,
		rootName:      rootName,
		clientFolders: clientFolders,
	}
}

// Authorized reports whether the email has a client folder mapped at all.
// Sign-in is denied for anyone else.
func (r *Resolver) Authorized(email string) bool {
	_, ok := r.clientFolders[email]
	return ok
}

// ClientFolderID resolves the user's namespace folder: first the gallery root
// by name, then the mapped client folder beneath it.
func (r *Resolver) ClientFolderID(ctx context.Context, email string) (string, error) {
	folderName, ok := r.clientFolders[email]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoFolderMapping, email)
	}

	roots, err := r.drive.ListFiles(ctx, Query{
		FoldersOnly: true,
		NameEquals:  r.rootName,
		PageSize:    1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to search for root folder: %w", err)
	}
	if len(roots) == 0 {
		return "", fmt.Errorf("%w: '%s'", ErrRootFolderNotFound, r.rootName)
	}

	clientFolders, err := r.drive.ListFiles(ctx, Query{
		ParentID:    roots[0].ID,
		FoldersOnly: true,
		NameEquals:  folderName,
		PageSize:    1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to search for client folder: %w", err)
	}
	if len(clientFolders) == 0 {
		return "", fmt.Errorf("%w: '%s' for user %s", ErrClientFolderNotFound, folderName, email)
	}

	return clientFolders[0].ID, nil
}
