package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/branislavfamily/familysite/pkg/cache"
	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the server use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides TTLArtifact when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, src family.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	root, treeHit, err := r.LoadWithCacheInfo(ctx, src, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Tree = root
	result.TreeHash = family.Hash(root)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.People = root.Count()
	result.Stats.Generations = root.Depth()
	result.CacheInfo.TreeHit = treeHit

	opts.Logger.Debug("loaded tree",
		"source", opts.Source,
		"people", result.Stats.People,
		"generations", result.Stats.Generations,
		"cached", treeHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, root, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Debug("rendered tree",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the tree from src and reports whether it came from
// the cache. Trees are cached as JSON under Keyer.TreeKey(opts.Source,
// opts.Ref); a source without a Ref is always loaded directly.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, src family.Source, opts Options) (*family.Person, bool, error) {
	r.applyLogger(&opts)
	cacheable := opts.Ref != ""
	cacheKey := r.Keyer.TreeKey(opts.Source, opts.Ref)

	if cacheable && !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil {
			opts.Logger.Warn("tree cache read failed", "key", cacheKey, "error", err)
		}
		if hit {
			if root, err := family.Decode(data, family.FormatJSON); err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return root, true, nil
			}
			// A corrupt entry falls through to a fresh load.
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Source)
	root, err := src.Load(ctx)
	nodes := 0
	if err == nil {
		nodes = root.Count()
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.Source, nodes, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		if data, err := json.Marshal(root); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, TTLTree); err != nil {
				opts.Logger.Warn("tree cache write failed", "key", cacheKey, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "tree", len(data))
			}
		}
	}
	return root, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, src family.Source, opts Options) (*family.Person, error) {
	root, _, err := r.LoadWithCacheInfo(ctx, src, opts)
	return root, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. The hit flag is true only when every requested format was cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, root *family.Person, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	treeHash := family.Hash(root)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("artifact cache read failed", "format", format, "error", err)
		}
		if hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	// Render only the formats that were not cached
	partial := opts
	partial.Formats = missing
	rendered, err := Render(ctx, root, partial)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.artifactTTL()); err != nil {
			opts.Logger.Warn("artifact cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// RenderArtifacts is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) RenderArtifacts(ctx context.Context, root *family.Person, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, root, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactTTL() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
