package client

import (
	"encoding/json"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const queryCacheSize = 256

// QueryCache stores raw response payloads keyed by resource. Mutations
// invalidate by key prefix per invalidationRules.
type QueryCache struct {
	store *lru.Cache[string, json.RawMessage]
}

func NewQueryCache(size int) *QueryCache {
	if size <= 0 {
		size = queryCacheSize
	}
	store, _ := lru.New[string, json.RawMessage](size)
	return &QueryCache{store: store}
}

func (c *QueryCache) Get(key string) (json.RawMessage, bool) {
	return c.store.Get(key)
}

func (c *QueryCache) Set(key string, raw json.RawMessage) {
	c.store.Add(key, raw)
}

func (c *QueryCache) Invalidate(key string) {
	c.store.Remove(key)
}

// InvalidatePrefix drops every entry whose key starts with prefix.
func (c *QueryCache) InvalidatePrefix(prefix string) {
	for _, k := range c.store.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.store.Remove(k)
		}
	}
}

// InvalidateFor applies the invalidation rules of one mutation operation.
func (c *QueryCache) InvalidateFor(op string) {
	for _, prefix := range invalidationRules[op] {
		c.InvalidatePrefix(prefix)
	}
}

// Purge drops everything, used on logout.
func (c *QueryCache) Purge() {
	c.store.Purge()
}
