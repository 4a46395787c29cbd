package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"notepad/internal/notes"
	"notepad/internal/storage/fs"
)

const previewSuffix = ".md"

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if base, ok := previewSlug(slug); ok {
			s.handlePreview(w, r, base)
			return
		}
		s.handleEditor(w, r, slug)
	case http.MethodPost:
		s.handleSave(w, r, slug)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// previewSlug reports whether path names the preview of a note, which is
// the case for any non-empty slug followed by ".md".
func previewSlug(path string) (string, bool) {
	base, ok := strings.CutSuffix(path, previewSuffix)
	if !ok || base == "" {
		return "", false
	}
	return base, true
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request, slug string) {
	content, err := s.store.LoadOrEmpty(slug)
	if err != nil {
		if errors.Is(err, fs.ErrInvalidSlug) {
			http.Error(w, "Invalid slug", http.StatusBadRequest)
			return
		}
		serverError(w, r, err)
		return
	}

	data := ViewData{
		Title:      slug,
		Slug:       slug,
		RawContent: content,
	}
	s.views.Render(w, "editor", data)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request, slug string) {
	if !fs.ValidSlug(slug) {
		http.Error(w, "Invalid slug", http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "note too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body := decodeText(data)
	if err := s.store.Save(slug, body); err != nil {
		if errors.Is(err, fs.ErrInvalidSlug) {
			http.Error(w, "Invalid slug", http.StatusBadRequest)
			return
		}
		serverError(w, r, err)
		return
	}
	slog.Debug("note saved", "slug", slug, "bytes", len(body))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request, slug string) {
	content, err := s.store.Load(slug)
	if err != nil {
		if errors.Is(err, fs.ErrInvalidSlug) || errors.Is(err, notes.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		serverError(w, r, err)
		return
	}

	rendered, err := s.md.Render(content)
	if err != nil {
		serverError(w, r, err)
		return
	}

	data := ViewData{
		Title:         slug + " - preview",
		Slug:          slug,
		RenderedHTML:  rendered,
		CodeCSS:       s.md.StyleSheet(),
		StylesheetURL: s.cfg.StylesheetURL,
	}
	s.views.Render(w, "preview", data)
}

// decodeText reads data as UTF-8, replacing each invalid byte with U+FFFD.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(data[:size])
		}
		data = data[size:]
	}
	return b.String()
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed", "request_id", RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
