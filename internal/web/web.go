package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mariusor/render"

	"spiritedlamb/internal/calendar"
	"spiritedlamb/internal/config"
	"spiritedlamb/internal/ics"
	"spiritedlamb/internal/intention"
	appLog "spiritedlamb/internal/log"
	"spiritedlamb/internal/store"
	"spiritedlamb/internal/view"
)

const siteName = "Spirited Lamb"

// embeddedStatic holds stylesheets and scripts served under /static/.
//
//go:embed all:static
var embeddedStatic embed.FS

//go:embed templates
var embeddedTemplates embed.FS

// SeedFunc builds the catalog as it looks on the day of now.
type SeedFunc func(now time.Time) *store.Store

// Server renders the site and serves its small JSON API.
type Server struct {
	cfg       *config.Config
	seed      SeedFunc
	intention intention.Provider
	ren       *render.Render
	router    chi.Router

	now         func() time.Time
	previewPath string

	// Seed dates are relative to the visit day, so the store is rebuilt
	// once per local day.
	mu       sync.Mutex
	storeDay string
	store    *store.Store
}

// Option customizes a Server.
type Option func(*Server)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithPreviewPath sets where /preview.png is read from.
func WithPreviewPath(path string) Option {
	return func(s *Server) { s.previewPath = path }
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config, seed SeedFunc, provider intention.Provider, opts ...Option) *Server {
	s := &Server{
		cfg:         cfg,
		seed:        seed,
		intention:   provider,
		ren:         newRenderer(),
		router:      chi.NewRouter(),
		now:         time.Now,
		previewPath: cfg.Snapshot.Output,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.intention == nil {
		s.intention = intention.Static(intention.Fallback)
	}
	s.registerRoutes()
	return s
}

func newRenderer() *render.Render {
	return render.New(render.Options{
		Directory:  "templates",
		FileSystem: &render.EmbedFileSystem{FS: embeddedTemplates},
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{{
			"markdown": renderMarkdown,
			"lower":    strings.ToLower,
		}},
		Charset:                   "UTF-8",
		HTMLContentType:           "text/html",
		DisableHTTPErrorRendering: true,
	})
}

// Handler returns the root http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.router)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/preview.png", s.handlePreview)

	r.Route("/api", func(r chi.Router) {
		r.Get("/intention", s.handleIntention)
		r.Get("/events", s.handleEvents)
		r.Get("/calendar", s.handleCalendar)
	})

	r.Route("/events/{id}", func(r chi.Router) {
		r.Get("/ics", s.handleExport)
		r.Get("/map", s.handleMap)
	})

	r.Handle("/static/*", s.staticFileServer())
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Spirited Lamb", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// requestLogger logs one debug line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		appLog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// Serve listens on addr and serves until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener runs an http.Server on ln until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ErrorLog:          appLog.StdErrorLog(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		appLog.Info("shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handlePreview serves the last captured PNG snapshot from disk.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.previewPath); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, s.previewPath)
}

func (s *Server) staticFileServer() http.Handler {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		appLog.Error("failed to initialize embedded static filesystem", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "static assets not available", http.StatusServiceUnavailable)
		})
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// storeAt returns the catalog for now's day, reseeding when the day changes.
func (s *Server) storeAt(now time.Time) *store.Store {
	day := now.Format(time.DateOnly)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil || s.storeDay != day {
		s.store = s.seed(now)
		s.storeDay = day
		appLog.Debug("event catalog seeded", "day", day)
	}
	return s.store
}

func (s *Server) pageOptions() view.Options {
	return view.Options{
		SiteName:  siteName,
		WeekStart: s.cfg.FirstWeekday(),
		Now:       s.now().In(s.cfg.Location()),
		Intention: intention.Fallback,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := s.pageOptions()
	state := view.ParseState(r.URL.Query(), opts.Now)
	if raw := r.URL.Query().Get("category"); raw != "" {
		if _, ok := calendar.ParseCategory(raw); !ok {
			appLog.Debug("unknown category, showing all", "category", raw)
		}
	}

	page := view.Build(s.storeAt(opts.Now), state, opts)
	if err := s.ren.HTML(w, http.StatusOK, "index", page); err != nil {
		appLog.Error("render index failed", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	e, err := s.storeAt(s.pageOptions().Now).Event(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}

	pageURL := s.cfg.SiteURL + "/?open=" + url.QueryEscape(e.ID) + "#events"
	w.Header().Set("Content-Type", ics.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ics.Filename(e.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(ics.Export(e, pageURL)); err != nil {
		appLog.Error("write calendar export failed", err, "id", e.ID)
	}
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	e, err := s.storeAt(s.pageOptions().Now).Event(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}
	http.Redirect(w, r, e.MapSearchURL(), http.StatusFound)
}
