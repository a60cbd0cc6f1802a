package authstub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qkart/internal/log"
)

// BasePath mirrors the storefront API prefix.
const BasePath = "/api/v1"

// Config configures the stub server.
type Config struct {
	Addr    string
	UserTTL time.Duration
	// DBPath selects the SQLite store. Empty keeps users in memory.
	DBPath string
	// Now replaces time.Now in the user store. Optional.
	Now func() time.Time
}

// Server is the stub auth service.
type Server struct {
	cfg    Config
	store  UserStore
	engine *gin.Engine
}

// New builds a server backed by the store cfg selects.
func New(cfg Config) (*Server, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, store), nil
}

func openStore(cfg Config) (UserStore, error) {
	opts := []StoreOption{WithClock(cfg.Now)}
	if cfg.DBPath == "" {
		return NewMemoryStore(cfg.UserTTL, opts...), nil
	}
	store, err := OpenSQLStore(cfg.DBPath, cfg.UserTTL, opts...)
	if err != nil {
		return nil, fmt.Errorf("opening user store: %w", err)
	}
	return store, nil
}

// NewWithStore builds a server around an existing store. The server owns
// store from here on and closes it in Close.
func NewWithStore(cfg Config, store UserStore) *Server {
	gin.SetMode(gin.ReleaseMode)
	registerValidations()

	s := &Server{cfg: cfg, store: store}
	h := &handler{store: store}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	api := engine.Group(BasePath)
	api.POST("/auth/register", h.register)
	api.GET("/health", h.health)

	s.engine = engine
	return s
}

// Close releases the user store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store exposes the user store.
func (s *Server) Store() UserStore {
	return s.store
}

// Serve listens on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Info(log.CatStub, "Auth stub listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// ListenAndServe binds cfg.Addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug(log.CatStub, "Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}
