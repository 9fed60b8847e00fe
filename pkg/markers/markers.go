// Package markers implements the filename conventions the gallery stores its
// state in. A file's cover and compression status live in the file name
// itself, as the substrings "_cover" and "_compressed" inserted before the
// extension. Album folder names may carry a leading date prefix used for
// sorting.
package markers

import (
	"regexp"
	"strings"
	"time"
)

const (
	// Cover marks the designated representative photo of an album.
	Cover = "_cover"
	// Compressed marks a photo already processed by the compression task.
	Compressed = "_compressed"
)

// Has reports whether name carries the marker anywhere in it.
func Has(name, marker string) bool {
	return strings.Contains(name, marker)
}

// Strip removes every occurrence of the marker from name. Removal is a plain
// global substring replace: a marker string appearing inside the "real" name
// is stripped too, matching the historical behavior of the gallery.
func Strip(name, marker string) string {
	return strings.ReplaceAll(name, marker, "")
}

// Apply returns name with exactly one occurrence of the marker, placed before
// the file extension. Any existing occurrences are stripped first, so applying
// a marker twice yields the same result. A name without an extension gets the
// marker appended as a suffix.
func Apply(name, marker string) string {
	clean := Strip(name, marker)
	dot := strings.LastIndex(clean, ".")
	if dot == -1 {
		return clean + marker
	}
	return clean[:dot] + marker + clean[dot:]
}

var (
	isoPrefix    = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(.*)$`)
	legacyPrefix = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})\s+(.*)$`)
)

// SplitDatePrefix splits an album folder name into its date prefix and display
// title. The canonical prefix is "YYYY-MM-DD "; the legacy "DD.MM.YYYY " form
// still present on older folders is normalized on read. The boolean is false
// when the name carries no recognizable date.
func SplitDatePrefix(folderName string) (time.Time, string, bool) {
	if m := isoPrefix.FindStringSubmatch(folderName); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			return t, m[2], true
		}
	}
	if m := legacyPrefix.FindStringSubmatch(folderName); m != nil {
		if t, err := time.Parse("02.01.2006", m[1]+"."+m[2]+"."+m[3]); err == nil {
			return t, m[4], true
		}
	}
	return time.Time{}, folderName, false
}

// AlbumFolderName builds the canonical folder name for a new album created on
// the given day.
func AlbumFolderName(title string, day time.Time) string {
	return day.Format("2006-01-02") + " " + title
}
