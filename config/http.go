package config

import (
	"net/http"
	"strings"
	"time"
)

const defaultActorHeader = "X-Actor-ID"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CompressionEnabled enables gzip compression for JSON responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	// Default is 6 (standard gzip default).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`

	// ActorHeader names the header the upstream gateway uses to pass the authenticated staff id.
	ActorHeader string `env:"HTTP_ACTOR_HEADER" envDefault:"X-Actor-ID"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}

	h.ActorHeader = strings.TrimSpace(h.ActorHeader)
	if h.ActorHeader == "" {
		h.ActorHeader = defaultActorHeader
	}
	h.ActorHeader = http.CanonicalHeaderKey(h.ActorHeader)
	if strings.TrimSpace(h.Addr) == "" {
		h.Addr = ":8080"
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}
