package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/md5calc/pkg/domain/interfaces"
)

// DefaultMaxUploadMemory is the number of bytes of uploaded files kept in
// memory. The rest is stored in temporary files.
const DefaultMaxUploadMemory int64 = 32 << 20

// config holds internal HTTP server configuration
type config struct {
	addr            string
	maxUploadMemory int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithMaxUploadMemory sets the number of bytes of uploads buffered in memory
func WithMaxUploadMemory(n int64) Option {
	return func(c *config) {
		c.maxUploadMemory = n
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	digestUC interfaces.DigestUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:            "localhost:8080",
		maxUploadMemory: DefaultMaxUploadMemory,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Calculator page and API
	digestHandler, err := NewDigestHandler(digestUC, cfg.maxUploadMemory)
	if err != nil {
		return nil, err
	}
	router.Get("/", digestHandler.ShowPage)
	router.Post("/", digestHandler.SubmitPage)
	router.Post("/api/digest", digestHandler.CalculateAPI)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
