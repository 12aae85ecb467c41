package content

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// SitemapRoutes are the indexed section anchors; "" is the home page.
var SitemapRoutes = []string{"", "#about", "#blog", "#gallery", "#recipes", "#family-tree", "#contact"}

// SitemapEntry is one <url> element.
type SitemapEntry struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// Sitemap lists every route with its crawl hints. The home page changes
// weekly at priority 1.0; sections change monthly at 0.8.
func (s Site) Sitemap(now time.Time) []SitemapEntry {
	out := make([]SitemapEntry, 0, len(SitemapRoutes))
	for _, r := range SitemapRoutes {
		e := SitemapEntry{
			Loc:        s.BaseURL + r,
			LastMod:    now.UTC().Format(time.RFC3339),
			ChangeFreq: "monthly",
			Priority:   0.8,
		}
		if r == "" {
			e.ChangeFreq = "weekly"
			e.Priority = 1
		}
		out = append(out, e)
	}
	return out
}

type urlset struct {
	XMLName xml.Name       `xml:"urlset"`
	Xmlns   string         `xml:"xmlns,attr"`
	URLs    []SitemapEntry `xml:"url"`
}

// WriteSitemap encodes entries as a sitemaps.org XML document.
func WriteSitemap(w io.Writer, entries []SitemapEntry) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: entries}); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Robots returns robots.txt allowing all crawlers and pointing at the
// sitemap.
func (s Site) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	fmt.Fprintf(&b, "\nSitemap: %s\n", s.URL("sitemap.xml"))
	return b.String()
}
