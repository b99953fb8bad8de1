// Package httpapi exposes season generation and week repair over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/derekprior/roundrobin/internal/schedule"
	"github.com/derekprior/roundrobin/internal/store"
)

// Store is the persistence the API needs.
type Store interface {
	SaveLeague(ctx context.Context, l store.League) error
	League(ctx context.Context, owner string) (store.League, error)
	Week(ctx context.Context, owner string, week int) (schedule.Week, error)
	SaveWeek(ctx context.Context, owner string, week int, pairings schedule.Week) error
}

type Server struct {
	store Store
	log   zerolog.Logger
}

func New(st Store, log zerolog.Logger) *Server {
	return &Server{store: st, log: log}
}

// Routes builds the router. allowedOrigins feeds the CORS policy.
func (s *Server) Routes(allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(s.logRequests)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.NotFound(s.notFound)
	router.Get("/healthz", s.handleHealth)

	router.Route("/leagues/{owner}", func(r chi.Router) {
		r.Get("/", s.handleGetLeague)
		r.Put("/", s.handlePutLeague)

		r.Route("/weeks/{week}", func(r chi.Router) {
			r.Get("/", s.handleGetWeek)
			r.Put("/", s.handlePutWeek)
			r.Post("/validate", s.handleValidateWeek)
		})
	})

	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("took", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}
