// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// defaultCacheSize bounds every adapter cache.
const defaultCacheSize = 1024

// lruCache is a fixed-capacity least-recently-used cache safe for
// concurrent use.
type lruCache[V any] struct {
	mu    sync.Mutex
	cache *lru.Cache
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{cache: lru.New(maxEntries)}
}

func (c *lruCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (c *lruCache[V]) Add(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, v)
}

func (c *lruCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// cacheKey joins the ordered parts of a call into one key.
func cacheKey(parts ...string) string {
	return strings.Join(parts, "\x00")
}
