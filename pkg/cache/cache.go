// Package cache provides byte caches for loaded trees and rendered artifacts.
//
// # Backends
//
//   - [NullCache]: never stores anything; used when caching is disabled.
//   - [MemoryCache]: in-process map with expiry; the server default.
//   - [FileCache]: JSON entries under a directory; the CLI default.
//   - [RedisCache]: shared cache backed by Redis via go-redis.
//
// # Keys
//
// A [Keyer] derives keys from content hashes and render options so that a
// changed tree or a different view never reads a stale artifact:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(family.Hash(root), cache.ArtifactKeyOpts{Format: "svg", Scale: 1})
//
// [ScopedKeyer] prefixes every key, which lets several sites share one Redis.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// TreeKey keys a tree loaded from a source, e.g. ("mongo", "families/branislav").
	TreeKey(source, ref string) string

	// ArtifactKey keys a rendered artifact of the tree with the given hash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Detailed bool    `json:"detailed,omitempty"`
	Title    string  `json:"title,omitempty"`
	Metrics  string  `json:"metrics,omitempty"` // digest of the layout metrics
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// TreeKey returns "tree:<source>:<ref>".
func (DefaultKeyer) TreeKey(source, ref string) string {
	return "tree:" + source + ":" + ref
}

// ArtifactKey hashes the tree hash together with opts.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, giving each site or tenant its own
// key namespace in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer selects
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TreeKey returns the prefixed tree key.
func (k *ScopedKeyer) TreeKey(source, ref string) string {
	return k.prefix + k.inner.TreeKey(source, ref)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}
