package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultBaseURL is the public address of the site.
const DefaultBaseURL = "https://branislavfamily.com"

// Site is the page metadata shared by every route.
type Site struct {
	Name          string
	BaseURL       string
	TitleTemplate string
	DefaultTitle  string
	Description   string
	Summary       string
	Keywords      []string
	Locale        string
	OGImage       string
	Tagline       string
	Greeting      string
}

// NewSite returns the metadata for a site served at baseURL. An empty
// baseURL selects DefaultBaseURL.
func NewSite(baseURL string) Site {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Site{
		Name:          "Branislav Family",
		BaseURL:       strings.TrimRight(baseURL, "/"),
		TitleTemplate: "%s | Branislav Family",
		DefaultTitle:  "Branislav Family | Home",
		Description: "Branislav Family - A loving family sharing our journey, traditions, and memories together. " +
			"Explore our family tree, recipes, gallery, and stories.",
		Summary: "A loving family sharing our journey, traditions, and memories together",
		Keywords: []string{
			"Branislav family", "family website", "family photos", "family news",
			"family tree", "family recipes", "family blog",
		},
		Locale:   "en_US",
		OGImage:  "https://images.unsplash.com/photo-1511895426328-dc8714191300?w=1200&h=630&fit=crop",
		Tagline:  "Preserving our heritage, building our future, and celebrating our togetherness.",
		Greeting: "Every family has a story... welcome to ours!",
	}
}

// Title returns the document title for a page. An empty page yields the
// default title.
func (s Site) Title(page string) string {
	if page == "" {
		return s.DefaultTitle
	}
	return fmt.Sprintf(s.TitleTemplate, page)
}

// URL joins path onto the base URL.
func (s Site) URL(path string) string {
	if path == "" {
		return s.BaseURL
	}
	if strings.HasPrefix(path, "#") {
		return s.BaseURL + path
	}
	return s.BaseURL + "/" + strings.TrimLeft(path, "/")
}

// OrganizationJSONLD returns the schema.org Organization record embedded in
// every page head.
func (s Site) OrganizationJSONLD() ([]byte, error) {
	sameAs := make([]string, 0, 3)
	for _, l := range SocialLinks() {
		sameAs = append(sameAs, l.Href)
	}
	return json.Marshal(struct {
		Context     string   `json:"@context"`
		Type        string   `json:"@type"`
		Name        string   `json:"name"`
		URL         string   `json:"url"`
		Logo        string   `json:"logo"`
		Description string   `json:"description"`
		SameAs      []string `json:"sameAs"`
	}{
		Context:     "https://schema.org",
		Type:        "Organization",
		Name:        s.Name,
		URL:         s.BaseURL,
		Logo:        s.URL("logo.png"),
		Description: s.Summary,
		SameAs:      sameAs,
	})
}
