// Package cache memoizes stemming results.
package cache

import (
	"context"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
	"github.com/ttab/elephant-stem/internal/rules"
)

// DefaultShards is the maximum number of shards a cache is split into.
const DefaultShards = 16

const keySeparator = "\x00"

type shard = ttlcache.Cache[string, rules.Result]

// Cache is a bounded LRU cache of stemming results keyed by ruleset and
// normalized word. The entries are spread over independently locked
// shards. A nil or zero capacity Cache computes every result.
type Cache struct {
	capacity int
	shards   []*shard
	metrics  *Metrics
	stop     []func()
}

type Option func(c *config)

type config struct {
	shards  int
	metrics *Metrics
}

// WithShards sets the number of shards, defaults to DefaultShards. The
// number of shards is never larger than the capacity.
func WithShards(n int) Option {
	return func(c *config) {
		c.shards = n
	}
}

// WithMetrics makes the cache report hits, misses and evictions.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// New creates a cache that holds at most capacity entries. A capacity of
// zero or less disables caching.
func New(capacity int, opts ...Option) *Cache {
	conf := config{
		shards: DefaultShards,
	}

	for _, o := range opts {
		o(&conf)
	}

	c := Cache{
		capacity: max(capacity, 0),
		metrics:  conf.metrics,
	}

	if c.capacity == 0 {
		return &c
	}

	n := max(min(conf.shards, c.capacity), 1)

	// Spread the remainder over the first shards so that the shard
	// capacities add up to the total.
	base, extra := c.capacity/n, c.capacity%n

	c.shards = make([]*shard, n)

	for i := range n {
		size := base
		if i < extra {
			size++
		}

		s := ttlcache.New(
			ttlcache.WithCapacity[string, rules.Result](uint64(size)),
		)

		if c.metrics != nil {
			c.stop = append(c.stop, s.OnEviction(c.evicted))
		}

		c.shards[i] = s
	}

	return &c
}

func (c *Cache) evicted(
	_ context.Context, reason ttlcache.EvictionReason,
	item *ttlcache.Item[string, rules.Result],
) {
	if reason != ttlcache.EvictionReasonCapacityReached {
		return
	}

	ruleset, _, _ := strings.Cut(item.Key(), keySeparator)

	c.metrics.evictions.WithLabelValues(ruleset).Inc()
}

// Capacity returns the maximum number of entries.
func (c *Cache) Capacity() int {
	if c == nil {
		return 0
	}

	return c.capacity
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}

	var n int

	for _, s := range c.shards {
		n += s.Len()
	}

	return n
}

// GetOrCompute returns the cached result for the word, or calls compute
// and caches its result. Concurrent misses for the same word may compute
// it more than once.
func (c *Cache) GetOrCompute(
	ruleset string, word string,
	compute func(word string) rules.Result,
) rules.Result {
	if c == nil || len(c.shards) == 0 {
		return compute(word)
	}

	key := ruleset + keySeparator + word
	s := c.shards[xxhash.Sum64String(key)%uint64(len(c.shards))]

	item := s.Get(key)
	if item != nil {
		c.count(ruleset, true)

		return item.Value()
	}

	c.count(ruleset, false)

	res := compute(word)

	s.Set(key, res, ttlcache.NoTTL)

	return res
}

func (c *Cache) count(ruleset string, hit bool) {
	if c.metrics == nil {
		return
	}

	if hit {
		c.metrics.hits.WithLabelValues(ruleset).Inc()
	} else {
		c.metrics.misses.WithLabelValues(ruleset).Inc()
	}
}

// Purge removes all entries.
func (c *Cache) Purge() {
	if c == nil {
		return
	}

	for _, s := range c.shards {
		s.DeleteAll()
	}
}

// Close purges the cache and detaches it from its metrics.
func (c *Cache) Close() {
	if c == nil {
		return
	}

	for _, stop := range c.stop {
		stop()
	}

	c.stop = nil

	c.Purge()
}
