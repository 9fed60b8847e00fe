package drive

import (
	"fmt"
	"strings"
)

const folderMimeType = "application/vnd.google-apps.folder"

// Query describes a Files.List call against the gallery drive. The zero value
// lists nothing useful; callers set the constraints they need and the builder
// renders the Drive query string.
type Query struct {
	ParentID            string
	InRoot              bool
	FoldersOnly         bool
	ImagesOnly          bool
	NameEquals          string
	NameContains        string
	ExcludeNameContains string
	IncludeTrashed      bool
	OrderBy             string
	PageSize            int64
}

func (q Query) build() string {
	var terms []string
	if q.ParentID != "" {
		terms = append(terms, fmt.Sprintf("'%s' in parents", q.ParentID))
	} else if q.InRoot {
		terms = append(terms, "'root' in parents")
	}
	if q.FoldersOnly {
		terms = append(terms, fmt.Sprintf("mimeType='%s'", folderMimeType))
	}
	if q.ImagesOnly {
		terms = append(terms, "mimeType contains 'image/'")
	}
	if q.NameEquals != "" {
		terms = append(terms, fmt.Sprintf("name='%s'", escapeName(q.NameEquals)))
	}
	if q.NameContains != "" {
		terms = append(terms, fmt.Sprintf("name contains '%s'", escapeName(q.NameContains)))
	}
	if q.ExcludeNameContains != "" {
		terms = append(terms, fmt.Sprintf("not name contains '%s'", escapeName(q.ExcludeNameContains)))
	}
	if !q.IncludeTrashed {
		terms = append(terms, "trashed=false")
	}
	return strings.Join(terms, " and ")
}

// escapeName escapes the quote characters Drive query strings are sensitive
// to. Folder names come from user-provided album titles.
func escapeName(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	return strings.ReplaceAll(name, `'`, `\'`)
}
