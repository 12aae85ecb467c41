// Package reveal tracks "animate once when first visible" flags.
//
// Each element is identified by a key. The first time a key is seen the
// caller starts its entrance animation; later sightings report nothing new.
// Flags are never cleared, so an element that scrolls out and back in stays
// revealed.
package reveal

import "sync"

// Tracker records which keys have been revealed. The zero value is ready to
// use and safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// Seen marks key as visible and reports whether this was its first sighting.
func (t *Tracker) Seen(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.seen[key]; ok {
		return false
	}
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	t.seen[key] = struct{}{}
	return true
}

// SeenAll marks every key as visible and returns the ones sighted for the
// first time, in input order.
func (t *Tracker) SeenAll(keys []string) []string {
	var fresh []string
	for _, k := range keys {
		if t.Seen(k) {
			fresh = append(fresh, k)
		}
	}
	return fresh
}

// Revealed reports whether key has been seen at least once.
func (t *Tracker) Revealed(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[key]
	return ok
}

// Len returns the number of revealed keys.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
