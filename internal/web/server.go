package web

import (
	"net/http"

	"notepad/internal/config"
	"notepad/internal/notes"
	"notepad/internal/render"
)

type Server struct {
	cfg   config.Config
	store *notes.Store
	md    *render.Renderer
	views *Templates
}

func NewServer(cfg config.Config) (*Server, error) {
	md, err := render.New()
	if err != nil {
		return nil, err
	}
	views, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:   cfg,
		store: notes.NewStore(cfg.NotesDir),
		md:    md,
		views: views,
	}
	return s, nil
}

// Handler sends every path to handleNote as-is; "/a//b" and "/a/../b"
// must reach the slug check uncleaned.
func (s *Server) Handler() http.Handler {
	return withRequestLog(withRecovery(http.HandlerFunc(s.handleNote)))
}
