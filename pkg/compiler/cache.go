package compiler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/telemetry"
)

// Cache memoizes compiled templates by content. It is safe for concurrent
// use, so one cache can serve several renderers.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64][]cacheEntry

	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer
}

type cacheEntry struct {
	template string
	render   runtime.RenderFunc
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger compile failures are reported to.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) { c.logger = l }
}

// WithMetrics counts compilations by result.
func WithMetrics(m *telemetry.Metrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

// WithTracer wraps each compilation in a span.
func WithTracer(t *telemetry.Tracer) CacheOption {
	return func(c *Cache) { c.tracer = t }
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{entries: make(map[uint64][]cacheEntry)}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Compile returns the cached render function for template, compiling it on
// first use. Failed compilations are not cached.
func (c *Cache) Compile(template string) (runtime.RenderFunc, error) {
	sum := xxhash.Sum64String(template)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries[sum] {
		if e.template == template {
			c.metrics.Compile("cached")
			return e.render, nil
		}
	}

	_, span := c.tracer.Start(context.Background(), "minivue.compile",
		telemetry.AttrTemplate.Int(len(template)),
		telemetry.AttrCacheHit.Bool(false),
	)
	render, err := Compile(template)
	telemetry.End(span, err)
	if err != nil {
		c.metrics.Compile("error")
		c.logger.Warn("template compilation failed", "hash", sum, "error", err)
		return nil, err
	}
	c.metrics.Compile("ok")
	c.entries[sum] = append(c.entries[sum], cacheEntry{template: template, render: render})
	return render, nil
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, list := range c.entries {
		n += len(list)
	}
	return n
}
