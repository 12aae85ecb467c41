// Package pipeline provides the tree rendering pipeline shared by the CLI and
// the HTTP server.
//
// The pipeline has two stages:
//
//  1. Load: read the family tree from a [family.Source], optionally through
//     the tree cache
//  2. Render: build the view tree once, lay it out, and write each requested
//     format (SVG, HTML, JSON, DOT, text, node-link SVG)
//
// Rendered artifacts are cached under a key derived from the tree's content
// hash and the options that change the output bytes, so the server answers
// repeated requests for the same view without re-rendering.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats:   []string{pipeline.FormatSVG},
//	    Transform: viewport.Transform{Scale: 1.2},
//	}
//	result, err := runner.Execute(ctx, family.NewSampleSource(), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/branislavfamily/familysite/pkg/cache"
	"github.com/branislavfamily/familysite/pkg/errors"
	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/render/tree"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// TTLTree is how long a tree loaded from a remote source stays cached.
	TTLTree = 10 * time.Minute

	// TTLArtifact is how long a rendered artifact stays cached. Artifacts are
	// keyed by content hash, so a long TTL never serves a stale tree.
	TTLArtifact = 24 * time.Hour

	// DefaultTitle is the accessible title of rendered SVGs.
	DefaultTitle = "Branislav Family Tree"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatText     = "text"
	FormatNodelink = "nodelink"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatHTML:     true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatText:     true,
	FormatNodelink: true,
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options. Source names the backend ("static", "file", "mongo") and
	// Ref identifies the tree within it. A tree is cached only when Ref is set.
	Source string `json:"source,omitempty"`
	Ref    string `json:"ref,omitempty"`

	// Render options
	Formats     []string           `json:"formats"`
	Transform   viewport.Transform `json:"transform"`
	Metrics     tree.Metrics       `json:"-"`
	Detailed    bool               `json:"detailed,omitempty"`    // node-link labels include id and generation
	Interactive bool               `json:"interactive,omitempty"` // embed pan/zoom script in SVG
	Title       string             `json:"title,omitempty"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"-"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills in zero values and checks the formats.
// The transform is clamped the same way the viewport controller clamps it.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	seen := make(map[string]bool, len(o.Formats))
	formats := o.Formats[:0:0]
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: %v)", f, FormatNames())
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	o.Formats = formats

	if o.Transform == (viewport.Transform{}) {
		o.Transform = viewport.Identity
	}
	o.Transform = viewport.NewAt(o.Transform).Transform()

	if o.Metrics == (tree.Metrics{}) {
		o.Metrics = tree.DefaultMetrics
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Source == "" {
		o.Source = "static"
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options for one format. Formats that
// ignore the transform leave it out so that every view shares one entry.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatHTML, FormatJSON:
		k.Scale, k.X, k.Y = o.Transform.Scale, o.Transform.X, o.Transform.Y
	case FormatDOT, FormatNodelink:
		k.Detailed = o.Detailed
	}
	switch format {
	case FormatSVG:
		k.Title = o.Title
		k.Metrics = metricsDigest(o.Metrics)
		if o.Interactive {
			k.Format = "svg+js"
		}
	case FormatJSON:
		k.Metrics = metricsDigest(o.Metrics)
	}
	return k
}

// metricsDigest identifies a set of layout metrics in cache keys.
func metricsDigest(m tree.Metrics) string {
	s := fmt.Sprintf("%g/%g/%g/%g/%g", m.CardWidth, m.CardHeight, m.SiblingGap, m.Connector, m.Padding)
	return cache.Hash([]byte(s))[:16]
}

// HasFormat reports whether f is among the requested formats.
func (o Options) HasFormat(f string) bool { return slices.Contains(o.Formats, f) }

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of [Runner.Execute].
type Result struct {
	Tree      *family.Person
	TreeHash  string
	Artifacts map[string][]byte
	CacheInfo CacheInfo
	Stats     Stats
}

// CacheInfo reports which stages were served from the cache.
type CacheInfo struct {
	TreeHit   bool
	RenderHit bool
}

// Stats holds timings and sizes for a run.
type Stats struct {
	People      int
	Generations int
	LoadTime    time.Duration
	RenderTime  time.Duration
}
