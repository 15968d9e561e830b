package config

import "time"

// Bounds mirror matching.DefaultLimit and matching.MaxLimit; config stays free of domain imports.
const (
	defaultCandidateLimit = 50
	maxCandidateLimit     = 500

	defaultComputeTimeout = 10 * time.Second
)

// MatchingConfig tunes the candidate matching engine.
type MatchingConfig struct {
	// CandidateLimit caps recommended candidate lists.
	CandidateLimit int `env:"MATCHING_CANDIDATE_LIMIT" envDefault:"50"`

	// ComputeTimeout bounds a shared candidate query once it no longer follows any single request.
	ComputeTimeout time.Duration `env:"MATCHING_COMPUTE_TIMEOUT" envDefault:"10s"`
}

// Sanitize clamps CandidateLimit to [1, 500]; zero or negative falls back to 50.
// A non-positive ComputeTimeout falls back to 10s.
func (c *MatchingConfig) Sanitize() {
	if c.ComputeTimeout <= 0 {
		c.ComputeTimeout = defaultComputeTimeout
	}
	switch {
	case c.CandidateLimit <= 0:
		c.CandidateLimit = defaultCandidateLimit
	case c.CandidateLimit > maxCandidateLimit:
		c.CandidateLimit = maxCandidateLimit
	}
}
