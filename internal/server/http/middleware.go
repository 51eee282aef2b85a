package httpserver

import (
	"net/http"
	"runtime/debug"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/notegraph/notegraph/internal/graph"
	"github.com/notegraph/notegraph/internal/service"
	"github.com/notegraph/notegraph/internal/token"
)

// Auth resolves the optional bearer token into an authenticated subject on
// the request context. Absent or invalid tokens degrade to an
// unauthenticated request, never to an error: only the use of an operation
// requiring a session turns that into a visible failure.
func Auth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if raw, ok := BearerFromHeader(r.Header); ok {
				if sub, ok := tokens.Verify(raw); ok {
					r = r.WithContext(graph.WithSubject(r.Context(), sub))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Loaders attaches fresh per-request dataloaders; nothing batched or cached
// survives the request.
func Loaders(notes service.NoteService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := graph.WithLoaders(r.Context(), graph.NewLoaders(notes))
			ctx = graph.WithClientIP(ctx, r.RemoteAddr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Logging returns a middleware for structured request logging. Only request
// metadata is logged, never bodies.
func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("dur", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// Recover returns a middleware that recovers from handler panics.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic",
						zap.Any("reason", rec),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", r.URL.Path),
					)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
