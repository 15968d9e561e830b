package config

import (
	"strings"
	"time"
)

const (
	DefaultMaxOpenConns    = 25
	defaultCandidatesTTL   = 5 * time.Minute
	defaultRedisMasterName = "mymaster"
)

// DBConfig contains PostgreSQL connection configuration.
type DBConfig struct {
	Host                 string `env:"HOST"                    envDefault:"localhost"`
	Port                 int    `env:"PORT"                    envDefault:"5432"`
	User                 string `env:"USER"                    envDefault:"jobmarket"`
	Password             string `env:"PASSWORD"                envDefault:"jobmarket"`
	Name                 string `env:"NAME"                    envDefault:"jobmarket"`
	SSLMode              string `env:"SSL_MODE"                envDefault:"disable"`
	RunMigrationsOnStart bool   `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
	MaxOpenConns         int    `env:"MAX_OPEN_CONNS"          envDefault:"25"`
}

// Sanitize fills blank fields with safe defaults.
func (c *DBConfig) Sanitize() {
	c.Host = strings.TrimSpace(c.Host)
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = 5432
	}
	if strings.TrimSpace(c.SSLMode) == "" {
		c.SSLMode = "disable"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
}

// RedisConfig contains Redis connection configuration.
//
// Exactly one topology is used: cluster when UseCluster is set, sentinel when UseSentinel
// is set, otherwise a direct connection to URI.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"                                   envSeparator:","`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"                                    envSeparator:","`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize trims node lists and resolves conflicting topology flags in favor of cluster.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	c.SentinelNodes = compact(c.SentinelNodes)
	c.ClusterNodes = compact(c.ClusterNodes)
	if strings.TrimSpace(c.SentinelMasterName) == "" {
		c.SentinelMasterName = defaultRedisMasterName
	}
	if c.UseCluster {
		c.UseSentinel = false
	}
}

// Configured reports whether enough settings exist to build a client.
func (c *RedisConfig) Configured() bool {
	switch {
	case c.UseCluster:
		return len(c.ClusterNodes) > 0 || c.URI != ""
	case c.UseSentinel:
		return len(c.SentinelNodes) > 0
	default:
		return c.URI != ""
	}
}

// CacheConfig controls the recommended-candidates cache.
type CacheConfig struct {
	Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// CandidatesTTL bounds how long a recommendation list is served from cache.
	CandidatesTTL time.Duration `env:"CACHE_CANDIDATES_TTL" envDefault:"5m"`
}

// Sanitize replaces non-positive TTLs with the default.
func (c *CacheConfig) Sanitize() {
	if c.CandidatesTTL <= 0 {
		c.CandidatesTTL = defaultCandidatesTTL
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
