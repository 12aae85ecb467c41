package cache

import (
	"context"
	"time"
)

// NullCache backs `--no-cache` and `backend = "none"`. Every tree and
// artifact lookup misses, so each request reloads and re-renders.
type NullCache struct{}

var _ Cache = NullCache{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data, which keeps the pipeline's write-after-render path
// identical whether or not caching is enabled.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
