package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tidytodo/server/internal/api/middleware/mwlog"
	"tidytodo/server/internal/api/middleware/mwsecure"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

// Service pairs a handler with the mux pattern it serves.
type Service struct {
	Handler http.Handler
	Path    string
}

func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Accept",
			"Accept-Encoding",
			"Content-Encoding",
			"Content-Type",
		},
		MaxAge: int(time.Second),
	})
}

func newH2CServer(handler http.Handler) *http.Server {
	return &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		// INFO: Use h2c so we can serve HTTP/2 without TLS.
		Handler: h2c.NewHandler(newCORS().Handler(handler), &http2.Server{
			IdleTimeout:          0,
			MaxConcurrentStreams: 100000,
			MaxHandlers:          0,
		}),
	}
}

// Handler builds the full middleware-wrapped handler for the given
// services: mux routing inside, request logging, then security headers.
func Handler(services []Service) http.Handler {
	mux := http.NewServeMux()
	for _, service := range services {
		slog.Info("Registering service", "path", service.Path)
		mux.Handle(service.Path, service.Handler)
	}
	return mwsecure.New(mwlog.New(slog.Default(), mux))
}

// ListenServices serves the services over TCP until ctx is canceled,
// then shuts down gracefully. The PORT environment variable overrides
// the supplied default port.
func ListenServices(ctx context.Context, services []Service, port string) error {
	if env := os.Getenv("PORT"); env != "" {
		port = env
	}

	srv := newH2CServer(Handler(services))
	srv.Addr = ":" + port

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server listening on TCP", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
