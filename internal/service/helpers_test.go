package service

import (
	"context"
	"strings"
	"sync"
	"time"
)

type countedMetric struct {
	name string
	tags map[string]string
}

// recordingSink captures metrics emitted by services under test.
type recordingSink struct {
	mu     sync.Mutex
	counts []countedMetric
	timed  []countedMetric
}

func (s *recordingSink) Count(name string, _ int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = append(s.counts, countedMetric{name: name, tags: tags})
}

func (s *recordingSink) Gauge(string, float64, map[string]string) {}

func (s *recordingSink) Timing(name string, _ time.Duration, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timed = append(s.timed, countedMetric{name: name, tags: tags})
}

func (s *recordingSink) count(name string) []countedMetric {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []countedMetric
	for _, m := range s.counts {
		if m.name == name {
			out = append(out, m)
		}
	}
	return out
}

func (s *recordingSink) timing(name string) []countedMetric {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []countedMetric
	for _, m := range s.timed {
		if m.name == name {
			out = append(out, m)
		}
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }

// memoryCache is an in-process core.CacheRepository. TTLs are ignored.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append([]byte(nil), value...)
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key], nil
}

func (c *memoryCache) Delete(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok, nil
}

func (c *memoryCache) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}

func (c *memoryCache) Health(context.Context) error { return nil }
