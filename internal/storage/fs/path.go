package fs

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrInvalidSlug = errors.New("invalid slug")

const noteExt = ".txt"

// ValidSlug reports whether slug can name a note: non-empty, no path
// separators of either platform, no NUL.
func ValidSlug(slug string) bool {
	if slug == "" {
		return false
	}
	return !strings.ContainsAny(slug, "/\\\x00")
}

// NoteFilePath maps a slug to <root>/<slug>.txt.
func NoteFilePath(root, slug string) (string, error) {
	if !ValidSlug(slug) {
		return "", ErrInvalidSlug
	}
	full := filepath.Join(root, slug+noteExt)
	rel, err := filepath.Rel(root, full)
	if err != nil || rel != slug+noteExt {
		return "", ErrInvalidSlug
	}
	return full, nil
}
