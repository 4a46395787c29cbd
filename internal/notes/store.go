// Package notes persists notes as flat text files, one <slug>.txt per note.
package notes

import (
	"errors"
	"fmt"
	"os"

	"notepad/internal/storage/fs"
)

var ErrNotFound = errors.New("note not found")

type Store struct {
	root   string
	locker *fs.Locker
}

func NewStore(root string) *Store {
	return &Store{root: root, locker: fs.NewLocker()}
}

func (s *Store) Root() string {
	return s.root
}

// Path resolves slug to its file, or fs.ErrInvalidSlug.
func (s *Store) Path(slug string) (string, error) {
	return fs.NoteFilePath(s.root, slug)
}

// Load returns the stored text for slug, ErrNotFound if it was never saved.
func (s *Store) Load(slug string) (string, error) {
	path, err := s.Path(slug)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read note %q: %w", slug, err)
	}
	return string(data), nil
}

// LoadOrEmpty is Load with a missing note reading as "".
func (s *Store) LoadOrEmpty(slug string) (string, error) {
	text, err := s.Load(slug)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return text, err
}

// Save replaces the whole content of slug with body.
func (s *Store) Save(slug, body string) error {
	path, err := s.Path(slug)
	if err != nil {
		return err
	}
	unlock := s.locker.Lock(slug)
	defer unlock()

	if err := fs.WriteFileAtomic(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write note %q: %w", slug, err)
	}
	return nil
}
