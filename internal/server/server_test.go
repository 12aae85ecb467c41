package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"github.com/branislavfamily/familysite/pkg/cache"
	"github.com/branislavfamily/familysite/pkg/observability"
	"github.com/branislavfamily/familysite/pkg/pipeline"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(cache.NewMemoryCache(), nil, opts.Logger)
	}
	opts.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

// findAll returns every element with the given class.
func findAll(t *testing.T, body, class string) []*html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "class" && hasClass(a.Val, class) {
					out = append(out, n)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func hasClass(attr, class string) bool {
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestHomePage(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, body := get(t, ts, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	counts := map[string]int{
		"nav-link":     7,
		"stat-card":    3,
		"blog-card":    6,
		"gallery-item": 12,
		"recipe-card":  4,
		"tree-card":    9,
	}
	for class, want := range counts {
		if got := len(findAll(t, body, class)); got != want {
			t.Errorf("%d elements with class %q, want %d", got, class, want)
		}
	}
	for _, want := range []string{
		"<title>Branislav Family | Home</title>",
		`application/ld+json`,
		"<strong>annual family reunion</strong>",
		"&copy; 2026",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestTreeKeysUnique(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, body := get(t, ts, "/tree")
	seen := map[string]bool{}
	for _, n := range findAll(t, body, "tree-card") {
		k := attr(n, "data-key")
		if seen[k] {
			t.Errorf("duplicate card key %q", k)
		}
		seen[k] = true
	}
	if len(seen) != 9 {
		t.Errorf("got %d cards, want 9", len(seen))
	}
}

func TestTreeTransform(t *testing.T) {
	ts := newTestServer(t, Options{})

	tests := []struct {
		query      string
		status     int
		canvas     string
		zoomInLink bool
		zoomOut    bool
	}{
		{"", 200, "translate(0px, 0px) scale(1)", true, true},
		{"?scale=1.4&x=30&y=-10", 200, "translate(30px, -10px) scale(1.4)", true, true},
		{"?scale=5", 200, "scale(2)", false, true},
		{"?scale=0.1", 200, "scale(0.5)", true, false},
		{"?scale=abc", 400, "", false, false},
		{"?x=NaN", 400, "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := get(t, ts, "/tree"+tt.query)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != 200 {
				return
			}
			canvas := findAll(t, body, "tree-canvas")
			if len(canvas) != 1 || !strings.Contains(attr(canvas[0], "style"), tt.canvas) {
				t.Errorf("canvas style = %q, want %q", attr(canvas[0], "style"), tt.canvas)
			}
			var in, out bool
			for _, b := range findAll(t, body, "zoom-btn") {
				if b.Data != "a" {
					continue
				}
				switch attr(b, "data-zoom") {
				case "in":
					in = true
				case "out":
					out = true
				}
			}
			if in != tt.zoomInLink || out != tt.zoomOut {
				t.Errorf("zoom links in=%v out=%v, want in=%v out=%v", in, out, tt.zoomInLink, tt.zoomOut)
			}
		})
	}
}

func TestTreeZoomLinkStepsScale(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, body := get(t, ts, "/tree?scale=1.8")
	for _, b := range findAll(t, body, "zoom-btn") {
		if attr(b, "data-zoom") == "in" && b.Data == "a" {
			if href := attr(b, "href"); !strings.Contains(href, "scale=2") {
				t.Errorf("zoom-in href = %q, want scale=2", href)
			}
			return
		}
	}
	t.Error("no zoom-in link")
}

func TestArtifacts(t *testing.T) {
	ts := newTestServer(t, Options{})
	tests := []struct {
		path, contentType, contains string
	}{
		{"/tree.svg", "image/svg+xml", "<svg"},
		{"/tree.json", "application/json", `"cards"`},
		{"/tree.dot", "text/vnd.graphviz", "digraph"},
		{"/tree.txt", "text/plain", "Branislav I"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != 200 {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
			if resp.Header.Get("X-Cache") != "MISS" {
				t.Errorf("first X-Cache = %q, want MISS", resp.Header.Get("X-Cache"))
			}
			resp, _ = get(t, ts, tt.path)
			if resp.Header.Get("X-Cache") != "HIT" {
				t.Errorf("second X-Cache = %q, want HIT", resp.Header.Get("X-Cache"))
			}
		})
	}
}

func TestTreeJSONTransform(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, body := get(t, ts, "/tree.json?scale=0.7")
	var out struct {
		Transform struct {
			Scale float64 `json:"scale"`
		} `json:"transform"`
		Cards []struct {
			Key string `json:"key"`
		} `json:"cards"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if out.Transform.Scale != 0.7 || len(out.Cards) != 9 {
		t.Errorf("transform scale = %v, cards = %d", out.Transform.Scale, len(out.Cards))
	}
}

func TestGallery(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := get(t, ts, "/gallery?category=wedding")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	items := findAll(t, body, "gallery-item")
	if len(items) != 3 {
		t.Errorf("wedding items = %d, want 3", len(items))
	}
	for _, it := range items {
		if attr(it, "data-category") != "wedding" {
			t.Errorf("item category = %q", attr(it, "data-category"))
		}
	}
	active := findAll(t, body, "active")
	if len(active) != 1 || attr(active[0], "data-category") != "wedding" {
		t.Error("wedding filter should be the only active button")
	}

	resp, body = get(t, ts, "/gallery?category=bogus")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bogus category status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "INVALID_CATEGORY") {
		t.Errorf("error body = %q", body)
	}
}

func TestLightbox(t *testing.T) {
	ts := newTestServer(t, Options{})

	// Image 2 is the first wedding photo; Prev wraps to the last one (10).
	resp, body := get(t, ts, "/gallery/2?category=wedding")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	prev := findAll(t, body, "lightbox-prev")
	next := findAll(t, body, "lightbox-next")
	if len(prev) != 1 || !strings.HasPrefix(attr(prev[0], "href"), "/gallery/10?") {
		t.Errorf("prev link = %v", attr(prev[0], "href"))
	}
	if len(next) != 1 || !strings.HasPrefix(attr(next[0], "href"), "/gallery/6?") {
		t.Errorf("next link = %v", attr(next[0], "href"))
	}
	if !strings.Contains(body, "1 / 3") {
		t.Error("missing position 1 / 3")
	}

	tests := []struct {
		path   string
		status int
	}{
		{"/gallery/3?category=wedding", http.StatusNotFound},
		{"/gallery/99", http.StatusNotFound},
		{"/gallery/bad%20id", http.StatusBadRequest},
		{"/gallery/1?category=nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if resp, _ := get(t, ts, tt.path); resp.StatusCode != tt.status {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
	}
}

func TestSEOAndHealth(t *testing.T) {
	ts := newTestServer(t, Options{})

	resp, body := get(t, ts, "/sitemap.xml")
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/xml") {
		t.Errorf("sitemap Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if n := strings.Count(body, "<url>"); n != 7 {
		t.Errorf("sitemap has %d urls, want 7", n)
	}
	if !strings.Contains(body, "2026-03-01T12:00:00Z") {
		t.Error("sitemap lastmod should use the server clock")
	}

	_, body = get(t, ts, "/robots.txt")
	if !strings.Contains(body, "Sitemap: https://branislavfamily.com/sitemap.xml") {
		t.Errorf("robots = %q", body)
	}

	resp, body = get(t, ts, "/healthz")
	if body != `{"status":"ok"}` {
		t.Errorf("healthz = %q", body)
	}
	if got := resp.Header.Get("Server"); !strings.HasPrefix(got, "familysite/") {
		t.Errorf("Server header = %q", got)
	}

	if resp, _ := get(t, ts, "/static/site.js"); resp.StatusCode != 200 {
		t.Errorf("static js status = %d", resp.StatusCode)
	}
}

func TestSiteScriptRevealPerElement(t *testing.T) {
	ts := newTestServer(t, Options{})
	_, body := get(t, ts, "/static/site.js")

	// Reveal cards may share or lack data-key, so tracking is per element
	// and every intersecting element stops being observed.
	if !strings.Contains(body, "new WeakSet()") {
		t.Error("reveal tracking should be keyed by element")
	}
	if strings.Contains(body, "dataset.key") {
		t.Error("reveal tracking should not depend on data-key")
	}
	i := strings.Index(body, "if (!e.isIntersecting) return;")
	j := strings.Index(body, "io.unobserve(e.target);")
	k := strings.Index(body, "if (seen.has(e.target)) return;")
	if i < 0 || j < i || k < j {
		t.Error("intersecting elements should be unobserved before the seen check")
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, Options{})
	resp, body := get(t, ts, "/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if !strings.Contains(body, "Page Not Found") {
		t.Error("missing 404 page content")
	}
	// Metrics is not mounted without a handler.
	if resp, _ := get(t, ts, "/metrics"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("/metrics status = %d, want 404", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	prom := observability.NewPrometheus("familysite")
	observability.SetHTTPHooks(prom)
	observability.SetCacheHooks(prom)
	observability.SetPipelineHooks(prom)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, Options{Metrics: prom.Handler()})
	get(t, ts, "/gallery/4")
	get(t, ts, "/tree.svg")

	_, body := get(t, ts, "/metrics")
	for _, want := range []string{
		`familysite_http_requests_total{method="GET",route="/gallery/{imageID}",status="200"} 1`,
		`familysite_render_total{format="svg",result="ok"} 1`,
		`familysite_cache_operations_total{key_type="artifact",op="miss"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	ts := newTestServer(t, Options{Logger: logger})

	get(t, ts, "/gallery?category=bogus")
	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "status=400") {
		t.Errorf("log output = %q", out)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s, err := New(Options{Logger: log.NewWithOptions(io.Discard, log.Options{})})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0", time.Second, time.Second, time.Second) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
