package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/productioncity/salutation/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string

	// PathPrefix is prepended to every API route.
	PathPrefix string

	// HTTP timeouts. WriteTimeout stays zero by default so the update
	// streams are not cut off.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// MetricsEnabled mounts /metrics, served from Gatherer.
	MetricsEnabled bool
	Gatherer       prometheus.Gatherer
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:           constants.DefaultAddr,
		PathPrefix:     constants.DefaultPathPrefix,
		ReadTimeout:    10 * time.Second,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = constants.DefaultAddr
	}
	if c.PathPrefix == "" {
		c.PathPrefix = constants.DefaultPathPrefix
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	return c
}
