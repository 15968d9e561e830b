// Package core defines the ports between the job marketplace services and their adapters.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/target/jobmarket-api/internal/domain/model"
)

// CacheRepository defines the interface for caching operations.
// The core defines the interface and the data layer provides the implementation.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// DeleteByPrefix removes every key starting with prefix and returns how many were removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// CandidateCacheKeyPrefix namespaces cached recommendation lists.
const CandidateCacheKeyPrefix = "candidates:job:"

// CandidateCache stores recommendation lists per job.
type CandidateCache struct {
	cache CacheRepository
	ttl   time.Duration
}

// CandidateCacheOptions bundles dependencies for NewCandidateCache.
type CandidateCacheOptions struct {
	Cache CacheRepository
	TTL   time.Duration
}

// DefaultCandidateCacheTTL is used when no TTL is configured.
const DefaultCandidateCacheTTL = 5 * time.Minute

// NewCandidateCache creates a CandidateCache. A nil cache disables caching.
func NewCandidateCache(opts CandidateCacheOptions) *CandidateCache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultCandidateCacheTTL
	}
	return &CandidateCache{cache: opts.Cache, ttl: ttl}
}

// candidateEntry is the stored form of a recommendation list. Version ties the list
// to the job revision it was computed from.
type candidateEntry struct {
	Version    string            `json:"version"`
	Candidates []*model.Employee `json:"candidates"`
}

// CandidateVersion identifies the revision of job a cached list was computed from.
// Every committed job write moves updated_at.
func CandidateVersion(job *model.Job) string {
	if job == nil {
		return ""
	}
	return job.UpdatedAt.UTC().Format(time.RFC3339Nano)
}

// Get returns the cached list for jobID computed at version. An entry written for
// any other version is a miss.
func (c *CandidateCache) Get(ctx context.Context, jobID, version string) ([]*model.Employee, bool, error) {
	if c == nil || c.cache == nil || jobID == "" {
		return nil, false, nil
	}
	raw, err := c.cache.Get(ctx, CandidateCacheKey(jobID))
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return nil, false, nil
	}
	var entry candidateEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cached candidates: %w", err)
	}
	if entry.Version != version {
		return nil, false, nil
	}
	if entry.Candidates == nil {
		entry.Candidates = []*model.Employee{}
	}
	return entry.Candidates, true, nil
}

// Put stores the list for jobID computed at version.
func (c *CandidateCache) Put(ctx context.Context, jobID, version string, employees []*model.Employee) error {
	if c == nil || c.cache == nil || jobID == "" {
		return nil
	}
	if employees == nil {
		employees = []*model.Employee{}
	}
	raw, err := json.Marshal(candidateEntry{Version: version, Candidates: employees})
	if err != nil {
		return fmt.Errorf("encode candidates: %w", err)
	}
	return c.cache.Set(ctx, CandidateCacheKey(jobID), raw, c.ttl)
}

// Invalidate drops the cached list for jobID and reports whether one was present.
// Called whenever a write may change which employees match the job.
func (c *CandidateCache) Invalidate(ctx context.Context, jobID string) (bool, error) {
	if c == nil || c.cache == nil || jobID == "" {
		return false, nil
	}
	return c.cache.Delete(ctx, CandidateCacheKey(jobID))
}

// Purge drops every cached list.
func (c *CandidateCache) Purge(ctx context.Context) (int, error) {
	if c == nil || c.cache == nil {
		return 0, nil
	}
	return c.cache.DeleteByPrefix(ctx, CandidateCacheKeyPrefix)
}

// CandidateCacheKey generates the cache key for a job's recommendation list.
func CandidateCacheKey(jobID string) string {
	return CandidateCacheKeyPrefix + jobID
}
