package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Fatalf("expected production mode by default")
	}
	if cfg.Postgres.Name != "jobmarket" || cfg.Postgres.Port != 5432 || !cfg.Postgres.RunMigrationsOnStart {
		t.Fatalf("unexpected postgres defaults: %#v", cfg.Postgres)
	}
	if cfg.Postgres.MaxOpenConns != 25 {
		t.Fatalf("expected 25 max open conns, got %d", cfg.Postgres.MaxOpenConns)
	}
	if cfg.Cache.CandidatesTTL != 5*time.Minute {
		t.Fatalf("expected 5m candidates ttl, got %s", cfg.Cache.CandidatesTTL)
	}
	if !cfg.CacheEnabled() {
		t.Fatalf("expected cache enabled with default redis uri")
	}
	if cfg.HTTP.ActorHeader != "X-Actor-Id" {
		t.Fatalf("expected canonical actor header, got %q", cfg.HTTP.ActorHeader)
	}
	if cfg.Matching.CandidateLimit != 50 {
		t.Fatalf("expected candidate limit 50, got %d", cfg.Matching.CandidateLimit)
	}
	if cfg.Matching.ComputeTimeout != 10*time.Second {
		t.Fatalf("expected 10s compute timeout, got %s", cfg.Matching.ComputeTimeout)
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Fatalf("expected metrics disabled by default")
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "market")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("DB_RUN_MIGRATIONS_ON_START", "false")
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("REDIS_USE_SENTINEL", "true")
	t.Setenv("REDIS_SENTINEL_NODES", "s1:26379, s2:26379,")
	t.Setenv("REDIS_SENTINEL_MASTER_NAME", "primary")
	t.Setenv("CACHE_CANDIDATES_TTL", "90s")
	t.Setenv("HTTP_ACTOR_HEADER", "x-forwarded-user")
	t.Setenv("MATCHING_CANDIDATE_LIMIT", "120")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expectedDB := DBConfig{
		Host:                 "db.internal",
		Port:                 6543,
		User:                 "svc",
		Password:             "s3cret",
		Name:                 "market",
		SSLMode:              "require",
		RunMigrationsOnStart: false,
		MaxOpenConns:         40,
	}
	if !reflect.DeepEqual(cfg.Postgres, expectedDB) {
		t.Fatalf("unexpected postgres configuration:\nexpected: %#v\ngot:      %#v", expectedDB, cfg.Postgres)
	}

	if !reflect.DeepEqual(cfg.Redis.SentinelNodes, []string{"s1:26379", "s2:26379"}) {
		t.Fatalf("unexpected sentinel nodes: %#v", cfg.Redis.SentinelNodes)
	}
	if cfg.Redis.SentinelMasterName != "primary" || !cfg.Redis.Configured() {
		t.Fatalf("unexpected redis configuration: %#v", cfg.Redis)
	}
	if cfg.Cache.CandidatesTTL != 90*time.Second {
		t.Fatalf("expected 90s ttl, got %s", cfg.Cache.CandidatesTTL)
	}
	if cfg.HTTP.ActorHeader != "X-Forwarded-User" {
		t.Fatalf("expected canonical header, got %q", cfg.HTTP.ActorHeader)
	}
	if cfg.Matching.CandidateLimit != 120 {
		t.Fatalf("expected candidate limit 120, got %d", cfg.Matching.CandidateLimit)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", " Development ")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Fatalf("expected APP_ENV=development to enable dev mode")
	}
}

func TestMatchingConfig_Sanitize(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 0, want: 50},
		{in: -3, want: 50},
		{in: 1, want: 1},
		{in: 500, want: 500},
		{in: 10000, want: 500},
	}

	for _, tt := range tests {
		cfg := MatchingConfig{CandidateLimit: tt.in}
		cfg.Sanitize()
		if cfg.CandidateLimit != tt.want {
			t.Errorf("CandidateLimit %d: expected %d, got %d", tt.in, tt.want, cfg.CandidateLimit)
		}
		if cfg.ComputeTimeout != 10*time.Second {
			t.Errorf("expected zero ComputeTimeout to default to 10s, got %s", cfg.ComputeTimeout)
		}
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 42, ActorHeader: "  "}
	cfg.Sanitize()

	if cfg.CompressionLevel != 9 {
		t.Fatalf("expected level clamped to 9, got %d", cfg.CompressionLevel)
	}
	if cfg.ActorHeader != "X-Actor-Id" {
		t.Fatalf("expected default actor header, got %q", cfg.ActorHeader)
	}
	if cfg.Addr != ":8080" || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}

	cfg = HTTPConfig{CompressionLevel: -1}
	cfg.Sanitize()
	if cfg.CompressionLevel != 1 {
		t.Fatalf("expected level clamped to 1, got %d", cfg.CompressionLevel)
	}
}

func TestRedisConfig_Sanitize(t *testing.T) {
	cfg := RedisConfig{
		UseCluster:   true,
		UseSentinel:  true,
		ClusterNodes: []string{" ", "n1:7000"},
	}
	cfg.Sanitize()

	if cfg.UseSentinel {
		t.Fatalf("expected cluster to win over sentinel")
	}
	if !reflect.DeepEqual(cfg.ClusterNodes, []string{"n1:7000"}) {
		t.Fatalf("unexpected cluster nodes: %#v", cfg.ClusterNodes)
	}
	if !cfg.Configured() {
		t.Fatalf("expected cluster to be configured")
	}

	direct := RedisConfig{URI: " "}
	direct.Sanitize()
	if direct.Configured() {
		t.Fatalf("expected blank direct uri to be unconfigured")
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
		Prefix:        ".market.",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "market" {
		t.Fatalf("expected prefix to be trimmed, got %q", cfg.Prefix)
	}
}
