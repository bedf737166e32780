package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(noStore)

	r.Get("/health", s.health)
	r.Get("/", s.index)
	r.Get("/heatmap.{format}", s.heatmap)

	r.Route("/api", func(r chi.Router) {
		r.Get("/layout", s.layout)
		r.Get("/completed", s.completed)
		r.Post("/click/{day}", s.click)
	})

	return r
}
