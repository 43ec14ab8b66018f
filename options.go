package salutation

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation/internal/metrics"
	"github.com/productioncity/salutation/pkg/constants"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/fields"
	"github.com/productioncity/salutation/pkg/logging"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// config holds the service configuration
type config struct {
	defaultLocale string
	strategy      reconcile.Strategy
	logger        *zerolog.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
	host          fields.Host
	mergeBase     []fields.Field
}

func defaultConfig() *config {
	return &config{
		defaultLocale: constants.DefaultLocale,
		strategy:      reconcile.NewDiffersStrategy(),
		logger:        logging.Default(),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Option is a function that configures a Service
type Option func(*config) error

// WithDefaultLocale sets the locale used for contacts without one.
func WithDefaultLocale(locale string) Option {
	return func(c *config) error {
		c.defaultLocale = locale
		return nil
	}
}

// WithStrategy sets the override strategy.
func WithStrategy(s reconcile.Strategy) Option {
	return func(c *config) error {
		if s == nil {
			return errors.NewConfigError("salutation", "strategy must not be nil", nil)
		}
		c.strategy = s
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithClock sets the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return errors.NewConfigError("salutation", "clock must not be nil", nil)
		}
		c.now = now
		return nil
	}
}

// WithHost sets the host probed for the campaign integration.
func WithHost(host fields.Host) Option {
	return func(c *config) error {
		c.host = host
		return nil
	}
}

// WithMergeFields seeds the templating registry with the host's own fields.
func WithMergeFields(base ...fields.Field) Option {
	return func(c *config) error {
		c.mergeBase = append(c.mergeBase, base...)
		return nil
	}
}
