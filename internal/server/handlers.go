package server

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/branislavfamily/familysite/pkg/content"
	"github.com/branislavfamily/familysite/pkg/errors"
	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/observability"
	"github.com/branislavfamily/familysite/pkg/pipeline"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

// =============================================================================
// View models
// =============================================================================

type chrome struct {
	Title         string
	Site          content.Site
	JSONLD        template.JS
	Nav           []content.Link
	FooterQuick   []content.Link
	FooterExplore []content.Link
	Social        []content.Link
	Year          int
}

type statView struct {
	content.Stat
	StepMS int64
	Steps  int
}

type postView struct {
	content.Post
	Excerpt template.HTML
}

type category struct {
	Value string
	Label string
}

type galleryView struct {
	Active     string
	Categories []category
	Images     []content.Image
}

type lightboxView struct {
	Category        string
	Image           content.Image
	Prev, Next      content.Image
	Position, Total int
}

type treeView struct {
	Markup     template.HTML
	Percent    int
	CanZoomIn  bool
	CanZoomOut bool
	ZoomInURL  string
	ZoomOutURL string
	ResetURL   string
}

type pageView struct {
	chrome
	Stats   []statView
	Posts   []postView
	Gallery galleryView
	Recipes []content.Recipe
	Tree    treeView
	Contact content.ContactInfo
}

func (s *Server) chrome(title string) chrome {
	quick, explore := content.FooterLinks()
	return chrome{
		Title:         s.opts.Site.Title(title),
		Site:          s.opts.Site,
		Nav:           content.NavLinks(),
		FooterQuick:   quick,
		FooterExplore: explore,
		Social:        content.SocialLinks(),
		Year:          s.opts.Now().Year(),
	}
}

// =============================================================================
// Pages
// =============================================================================

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	t, err := parseTransform(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tv, err := s.tree(r, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	gv, err := gallery(content.CategoryAll)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page := pageView{
		chrome:  s.chrome(""),
		Gallery: gv,
		Recipes: content.Recipes(),
		Tree:    tv,
		Contact: content.Contact(),
	}
	if ld, err := s.opts.Site.OrganizationJSONLD(); err == nil {
		page.JSONLD = template.JS(ld)
	}
	for _, st := range content.Stats() {
		plan := content.NewCounterPlan(st.Value)
		page.Stats = append(page.Stats, statView{Stat: st, StepMS: plan.Step().Milliseconds(), Steps: plan.Steps})
	}
	for _, p := range content.Posts() {
		excerpt, err := p.ExcerptHTML()
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		page.Posts = append(page.Posts, postView{Post: p, Excerpt: excerpt})
	}

	s.render(w, r, http.StatusOK, "page", page)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", s.chrome("Page Not Found"))
}

// =============================================================================
// Family tree
// =============================================================================

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	t, err := parseTransform(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tv, err := s.tree(r, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "tree", tv)
}

// tree renders the tree section at transform t. The zoom links carry the
// transform a controller would reach by pressing each button, so the viewer
// works without script.
func (s *Server) tree(r *http.Request, t viewport.Transform) (treeView, error) {
	root, err := s.load(r)
	if err != nil {
		return treeView{}, err
	}
	ctrl := viewport.NewAt(t)
	artifacts, hit, err := s.opts.Runner.RenderWithCacheInfo(r.Context(), root, pipeline.Options{
		Formats:   []string{pipeline.FormatHTML},
		Transform: ctrl.Transform(),
		Logger:    s.log,
	})
	if err != nil {
		return treeView{}, err
	}
	s.log.Debug("tree section", "scale", ctrl.Scale(), "cached", hit)

	in, out := viewport.NewAt(ctrl.Transform()), viewport.NewAt(ctrl.Transform())
	in.ZoomIn()
	out.ZoomOut()
	return treeView{
		Markup:     template.HTML(artifacts[pipeline.FormatHTML]),
		Percent:    int(math.Round(ctrl.Scale() * 100)),
		CanZoomIn:  ctrl.CanZoomIn(),
		CanZoomOut: ctrl.CanZoomOut(),
		ZoomInURL:  treeURL(in.Transform()),
		ZoomOutURL: treeURL(out.Transform()),
		ResetURL:   "/#family-tree",
	}, nil
}

func (s *Server) handleArtifact(format string) http.HandlerFunc {
	contentTypes := map[string]string{
		pipeline.FormatSVG:      "image/svg+xml",
		pipeline.FormatNodelink: "image/svg+xml",
		pipeline.FormatJSON:     "application/json",
		pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
		pipeline.FormatText:     "text/plain; charset=utf-8",
	}
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		t, err := parseTransform(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		root, err := s.load(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		artifacts, hit, err := s.opts.Runner.RenderWithCacheInfo(r.Context(), root, pipeline.Options{
			Formats:     []string{format},
			Transform:   t,
			Detailed:    q.Get("detailed") == "true",
			Interactive: format == pipeline.FormatSVG,
			Logger:      s.log,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Cache", cacheStatus(hit))
		_, _ = w.Write(artifacts[format])
	}
}

func (s *Server) load(r *http.Request) (*family.Person, error) {
	return s.opts.Runner.Load(r.Context(), s.opts.Source, pipeline.Options{
		Source: s.opts.SourceName,
		Ref:    s.opts.SourceRef,
		Logger: s.log,
	})
}

// parseTransform reads ?scale=&x=&y=. Missing values keep the identity view;
// the scale is clamped later by the controller.
func parseTransform(q url.Values) (viewport.Transform, error) {
	t := viewport.Identity
	fields := []struct {
		name string
		dst  *float64
	}{{"scale", &t.Scale}, {"x", &t.X}, {"y", &t.Y}}
	for _, f := range fields {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return t, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", f.name, raw)
		}
		*f.dst = v
	}
	return viewport.NewAt(t).Transform(), nil
}

func treeURL(t viewport.Transform) string {
	q := url.Values{}
	q.Set("scale", strconv.FormatFloat(t.Scale, 'f', -1, 64))
	if t.X != 0 {
		q.Set("x", strconv.FormatFloat(t.X, 'f', -1, 64))
	}
	if t.Y != 0 {
		q.Set("y", strconv.FormatFloat(t.Y, 'f', -1, 64))
	}
	return "/?" + q.Encode() + "#family-tree"
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// =============================================================================
// Gallery
// =============================================================================

func gallery(active string) (galleryView, error) {
	images, err := content.Filter(active)
	if err != nil {
		return galleryView{}, err
	}
	if active == "" {
		active = content.CategoryAll
	}
	gv := galleryView{Active: active, Images: images}
	for _, c := range content.Categories() {
		gv.Categories = append(gv.Categories, category{Value: c, Label: content.CategoryLabel(c)})
	}
	return gv, nil
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	gv, err := gallery(r.URL.Query().Get("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "gallery", gv)
}

func (s *Server) handleLightbox(w http.ResponseWriter, r *http.Request) {
	c := r.URL.Query().Get("category")
	lb, err := content.OpenLightbox(c, chi.URLParam(r, "imageID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	prev, next := lb.Neighbors()
	pos, total := lb.Position()
	s.render(w, r, http.StatusOK, "lightbox", lightboxView{
		Category: lb.Category,
		Image:    lb.Current(),
		Prev:     prev,
		Next:     next,
		Position: pos,
		Total:    total,
	})
}

// =============================================================================
// SEO and health
// =============================================================================

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := content.WriteSitemap(&buf, s.opts.Site.Sitemap(s.opts.Now())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprint(w, s.opts.Site.Robots())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// =============================================================================
// Responses
// =============================================================================

// render executes a template into a buffer first so that a template error
// still produces a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render %s", name))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeError answers with the status mapped from err's code. Internal
// details are logged, never shown.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)
	if status >= 500 {
		observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
		s.log.Error("handler failed", "path", r.URL.Path, "error", err)
		msg = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	var buf bytes.Buffer
	if terr := s.tmpl.ExecuteTemplate(&buf, "error", struct {
		Code    errors.Code
		Message string
	}{errors.GetCode(err), msg}); terr != nil {
		_, _ = w.Write([]byte(template.HTMLEscapeString(msg)))
		return
	}
	_, _ = w.Write(buf.Bytes())
}
