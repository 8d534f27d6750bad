// Package cache provides a bounded, time-expiring result cache keyed by a
// normalized fingerprint of (table, operation, arguments).
package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Duck441/db2graphql/internal/query"
)

const (
	// DefaultSize is the maximum number of cached result sets. Inserting
	// one more evicts the least-recently-used entry.
	DefaultSize = 500

	// DefaultTTL is the maximum lifetime of an entry; older entries read
	// as misses.
	DefaultTTL = 5 * time.Hour
)

// Cache is a bounded LRU of result sets with per-entry expiry. Get and Set
// are safe under concurrent access; the underlying LRU serializes them
// internally.
type Cache struct {
	lru *expirable.LRU[string, []map[string]any]
}

// New returns a cache holding at most size entries, each living at most
// ttl. Zero values select the defaults.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{lru: expirable.NewLRU[string, []map[string]any](size, nil, ttl)}
}

// Fingerprint derives a deterministic cache key from the fully-qualified
// table name, an operation tag, an ordered id list (empty for bulk reads)
// and the filter/pagination subset of the arguments. Debug and cache-bypass
// flags never reach the key, so two logically identical queries share an
// entry regardless of those flags.
func Fingerprint(table, op string, ids []string, args query.Arguments) string {
	normalized, _ := json.Marshal(struct {
		Filter     map[string][]query.Condition `json:"filter,omitempty"`
		Pagination query.Pagination             `json:"pagination,omitempty"`
	}{args.Filter, args.Pagination})

	h := xxhash.New()
	_, _ = h.WriteString(table)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(op)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(strings.Join(ids, ","))
	_, _ = h.WriteString("\x00")
	_, _ = h.Write(normalized)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Get returns the cached result set for key and marks it recently used.
func (c *Cache) Get(key string) ([]map[string]any, bool) {
	return c.lru.Get(key)
}

// Set stores a result set under key, evicting the least-recently-used
// entry when the cache is full.
func (c *Cache) Set(key string, rows []map[string]any) {
	c.lru.Add(key, rows)
}

// Peek reports whether key is present without altering its recency.
func (c *Cache) Peek(key string) bool {
	_, ok := c.lru.Peek(key)
	return ok
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
