// Package app provides the application context and dependency management
// for the salutation CLI: configuration, logging and the lazily opened
// service with its store.
package app

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/productioncity/salutation"
	"github.com/productioncity/salutation/internal/appcontext"
	"github.com/productioncity/salutation/internal/metrics"
	"github.com/productioncity/salutation/internal/server"
	"github.com/productioncity/salutation/internal/store"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/fields"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// App represents the salutation application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// registry collects the service metrics served by `salutation serve`.
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Service and store (lazy-initialized, singleton)
	mu      sync.Mutex
	store   contacts.Store
	service salutation.Service
}

var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version:  version,
		commit:   commit,
		date:     date,
		builtBy:  builtBy,
		registry: prometheus.NewRegistry(),
	}
	app.metrics = metrics.New(app.registry)

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ServerConfig returns the HTTP server configuration. Metrics are served
// from the app's own registry.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	if a.config.Addr != "" {
		cfg.Addr = a.config.Addr
	}
	if a.config.PathPrefix != "" {
		cfg.PathPrefix = a.config.PathPrefix
	}
	if a.config.ReadTimeout > 0 {
		cfg.ReadTimeout = a.config.ReadTimeout
	}
	if a.config.IdleTimeout > 0 {
		cfg.IdleTimeout = a.config.IdleTimeout
	}
	cfg.MetricsEnabled = a.config.MetricsEnabled
	cfg.Gatherer = a.registry
	return cfg
}

// Policy builds a reconciliation policy from the configuration. Unlike
// Service it never touches the store.
func (a *App) Policy() (*reconcile.Policy, error) {
	var opts []reconcile.Option
	if a.config.DefaultLocale != "" {
		opts = append(opts, reconcile.WithDefaultLocale(a.config.DefaultLocale))
	}
	if a.config.OverrideStrategy != "" {
		strategy, err := reconcile.ParseStrategy(a.config.OverrideStrategy)
		if err != nil {
			return nil, errors.NewConfigError("override_strategy", err.Error(), err)
		}
		opts = append(opts, reconcile.WithStrategy(strategy))
	}
	return reconcile.New(opts...)
}

// Service returns the salutation service, opening the store on first use.
// It is safe for concurrent use and creates only one instance.
func (a *App) Service(ctx context.Context) (salutation.Service, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.service != nil {
		return a.service, nil
	}

	opts, err := a.serviceOptions()
	if err != nil {
		return nil, err
	}

	if a.store == nil {
		st, err := store.Open(ctx, a.config.StoreConfig(), a.logger)
		if err != nil {
			return nil, errors.WrapResource("open", "store", a.config.Store, err)
		}
		a.store = st
	}

	svc, err := salutation.New(a.store, opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "service", "", err)
	}

	a.service = svc
	return svc, nil
}

// Shutdown closes the store if one was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	a.service = nil
	if err != nil {
		return errors.WrapResource("close", "store", a.config.Store, err)
	}
	return nil
}

// serviceOptions constructs service options from the app configuration.
func (a *App) serviceOptions() ([]salutation.Option, error) {
	opts := []salutation.Option{
		salutation.WithLogger(a.logger),
		salutation.WithMetrics(a.metrics),
	}

	if a.config.DefaultLocale != "" {
		opts = append(opts, salutation.WithDefaultLocale(a.config.DefaultLocale))
	}

	if a.config.OverrideStrategy != "" {
		strategy, err := reconcile.ParseStrategy(a.config.OverrideStrategy)
		if err != nil {
			return nil, errors.NewConfigError("override_strategy", err.Error(), err)
		}
		opts = append(opts, salutation.WithStrategy(strategy))
	}

	if len(a.config.HostModels) > 0 {
		opts = append(opts, salutation.WithHost(fields.StaticHost(a.config.HostModels)))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets the store instead of opening the configured one (useful
// for testing).
func WithStore(st contacts.Store) Option {
	return func(a *App) error {
		a.store = st
		return nil
	}
}
