// Package server serves the family website over HTTP.
package server

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/branislavfamily/familysite/pkg/buildinfo"
	"github.com/branislavfamily/familysite/pkg/content"
	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/pipeline"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Options configures a Server.
type Options struct {
	Runner *pipeline.Runner
	Source family.Source

	// SourceName and SourceRef identify the tree for the tree cache; see
	// pipeline.Options.
	SourceName string
	SourceRef  string

	Site    content.Site
	Logger  *log.Logger
	Metrics http.Handler // served at /metrics when non-nil

	// Now is the clock used for sitemaps and the footer year.
	Now func() time.Time
}

// Server is the HTTP handler for the site.
type Server struct {
	router chi.Router
	opts   Options
	log    *log.Logger
	tmpl   *template.Template
}

// New builds a server. A nil Runner selects an uncached runner and a nil
// Source selects the built-in sample tree.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Source == nil {
		opts.Source = family.NewSampleSource()
		opts.SourceName = "static"
	}
	if opts.Site.BaseURL == "" {
		opts.Site = content.NewSite("")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{opts: opts, log: opts.Logger, tmpl: tmpl}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))
	r.Use(RequestLogger(s.log))
	r.Use(Metrics)
	r.Use(middleware.Recoverer)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", s.handlePage)
	r.Get("/tree", s.handleTree)
	r.Get("/tree.svg", s.handleArtifact(pipeline.FormatSVG))
	r.Get("/tree.json", s.handleArtifact(pipeline.FormatJSON))
	r.Get("/tree.dot", s.handleArtifact(pipeline.FormatDOT))
	r.Get("/tree.txt", s.handleArtifact(pipeline.FormatText))
	r.Get("/tree/nodelink.svg", s.handleArtifact(pipeline.FormatNodelink))
	r.Get("/gallery", s.handleGallery)
	r.Get("/gallery/{imageID}", s.handleLightbox)
	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/robots.txt", s.handleRobots)
	r.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		r.Handle("/metrics", s.opts.Metrics)
	}
	r.NotFound(s.handleNotFound)

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
