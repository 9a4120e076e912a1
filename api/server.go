// Package api serves the dynamic profile page: the page itself rendered per
// request, the profile as JSON, static assets and an optional live-reload
// channel.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/folio/internal/config"
	"github.com/seenimoa/folio/internal/logging"
	"github.com/seenimoa/folio/internal/profile"
	"github.com/seenimoa/folio/internal/site"
)

const (
	shutdownTimeout = 15 * time.Second
	reloadDebounce  = 200 * time.Millisecond
)

// Server is the development HTTP server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	log    *zap.Logger
	hub    *Hub
}

// NewServer creates a server with all routes and middleware. A nil logger
// discards output.
func NewServer(cfg *config.Config, log *zap.Logger) *Server {
	s := &Server{
		cfg: cfg,
		log: logging.OrNop(log),
		hub: NewHub(),
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the HTTP server, the reload hub and, when live reload is on,
// the file watcher. It returns after a graceful shutdown once ctx ends, or
// as soon as one of them fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.hub.Run(ctx)
	})

	if s.cfg.Server.LiveReload {
		w := NewWatcher(s.watchPaths(), reloadDebounce, s.log, func(path string) {
			s.log.Info("change detected, reloading clients",
				zap.String("path", path),
				zap.Int("clients", s.hub.ClientCount()),
			)
			s.hub.Broadcast(Message{Type: "reload"})
		})
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	g.Go(func() error {
		s.log.Info("server listening",
			zap.String("addr", ln.Addr().String()),
			zap.Bool("live_reload", s.cfg.Server.LiveReload),
		)
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) watchPaths() []string {
	return []string{s.cfg.Site.Profile, s.cfg.Site.Views, s.cfg.Site.Public}
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	// CORS
	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/ws/reload", s.handleReload)

	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", s.handleProfile)
		r.Get("/config", s.handleGetConfig)
	})

	r.Handle("/*", http.FileServer(http.Dir(s.cfg.Site.Public)))

	return r
}

// requestLogger logs one line per request through zap.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	p, err := profile.Load(s.cfg.Site.Profile)
	if err != nil {
		s.log.Error("loading profile", zap.Error(err))
		http.Error(w, "Error loading profile data", http.StatusInternalServerError)
		return
	}
	posts, err := profile.LoadPosts(s.cfg.Site.Profile, p)
	if err != nil {
		s.log.Warn("loading writing feed", zap.Error(err))
	}

	text, err := os.ReadFile(filepath.Join(s.cfg.Site.Views, site.DynamicTemplate))
	if err != nil {
		s.log.Error("reading template", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	data := site.NewTemplateData(p, posts)
	data.LiveReload = s.cfg.Server.LiveReload
	html, err := site.RenderTemplate(site.DynamicTemplate, string(text), data)
	if err != nil {
		s.log.Error("rendering page", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html)) //nolint:errcheck
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := profile.Load(s.cfg.Site.Profile)
	if err != nil {
		s.log.Error("loading profile", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error loading profile data")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ============================================================
// Response helpers
// ============================================================

// ErrorResponse is the JSON body of failed API calls.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("failed to write JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
