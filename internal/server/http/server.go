package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"go.uber.org/zap"

	"github.com/notegraph/notegraph/internal/config"
	"github.com/notegraph/notegraph/internal/service"
	"github.com/notegraph/notegraph/internal/token"
)

// Server serves the GraphQL API over HTTP.
type Server struct {
	srv *http.Server
	log *zap.Logger
}

// New wires the middleware stack and mounts the GraphQL endpoint.
func New(cfg *config.Config, log *zap.Logger, schema graphql.Schema, tokens *token.Service, notes service.NoteService) *Server {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(Recover(log))
	r.Use(Logging(log))
	r.Use(httprate.Limit(cfg.RequestsPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	r.Use(Auth(tokens))
	r.Use(Loaders(notes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/graphql", gqlhandler.New(&gqlhandler.Config{
		Schema:   &schema,
		Pretty:   !cfg.IsProduction(),
		GraphiQL: cfg.GraphiQL,
	}))

	return &Server{
		srv: &http.Server{
			Addr:         cfg.AppAddr,
			Handler:      r,
			ReadTimeout:  cfg.AppReadTimeout,
			WriteTimeout: cfg.AppWriteTimeout,
		},
		log: log,
	}
}

// Handler exposes the root handler (for tests).
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run serves until ctx is canceled, then shuts down gracefully with a 5s
// deadline.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.srv.Addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return s.srv.Close()
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
