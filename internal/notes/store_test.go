package notes

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"notepad/internal/storage/fs"
)

func TestSaveThenLoad(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("note1", "# Hi\n"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load("note1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "# Hi\n" {
		t.Fatalf("expected %q, got %q", "# Hi\n", got)
	}

	raw, err := os.ReadFile(filepath.Join(store.Root(), "note1.txt"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) != "# Hi\n" {
		t.Fatalf("expected file content %q, got %q", "# Hi\n", raw)
	}
}

func TestSaveReplacesWholeBody(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save("a", "line1"); err != nil {
		t.Fatalf("save line1: %v", err)
	}
	if err := store.Save("a", "line2"); err != nil {
		t.Fatalf("save line2: %v", err)
	}
	got, err := store.Load("a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != "line2" {
		t.Fatalf("expected %q, got %q", "line2", got)
	}
}

func TestSaveIdempotent(t *testing.T) {
	once := NewStore(t.TempDir())
	twice := NewStore(t.TempDir())
	body := "same\ncontent\n"
	if err := once.Save("n", body); err != nil {
		t.Fatalf("save: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := twice.Save("n", body); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	a, _ := once.Load("n")
	b, _ := twice.Load("n")
	if a != b {
		t.Fatalf("expected identical content, got %q and %q", a, b)
	}
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	text, err := store.LoadOrEmpty("nope")
	if err != nil {
		t.Fatalf("load or empty: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestInvalidSlugTouchesNothing(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)
	for _, slug := range []string{"", "a/b", "a\\b", "../x"} {
		if err := store.Save(slug, "x"); !errors.Is(err, fs.ErrInvalidSlug) {
			t.Fatalf("save %q: expected ErrInvalidSlug, got %v", slug, err)
		}
		if _, err := store.Load(slug); !errors.Is(err, fs.ErrInvalidSlug) {
			t.Fatalf("load %q: expected ErrInvalidSlug, got %v", slug, err)
		}
		if _, err := store.LoadOrEmpty(slug); !errors.Is(err, fs.ErrInvalidSlug) {
			t.Fatalf("load or empty %q: expected ErrInvalidSlug, got %v", slug, err)
		}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files, got %d", len(entries))
	}
}

func TestSaveMissingRoot(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "gone"))
	err := store.Save("a", "x")
	if err == nil {
		t.Fatalf("expected error when the notes dir is missing")
	}
	if errors.Is(err, fs.ErrInvalidSlug) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestConcurrentSavesLastWriterWins(t *testing.T) {
	store := NewStore(t.TempDir())
	bodies := []string{"alpha", "beta", "gamma", "delta"}
	var wg sync.WaitGroup
	for _, body := range bodies {
		wg.Add(1)
		go func(body string) {
			defer wg.Done()
			if err := store.Save("shared", body); err != nil {
				t.Errorf("save %q: %v", body, err)
			}
		}(body)
	}
	wg.Wait()

	got, err := store.Load("shared")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	found := false
	for _, body := range bodies {
		if got == body {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected one complete body, got %q", got)
	}
}
