package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation"
	"github.com/productioncity/salutation/internal/server"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ServiceFunc      func(context.Context) (salutation.Service, error)
	PolicyFunc       func() (*reconcile.Policy, error)
	ServerConfigFunc func() server.Config
	LoggerFunc       func() *zerolog.Logger
	Format           string
	VersionFunc      func() string
}

// Service returns a service using the mock function or nil.
func (m *Mock) Service(ctx context.Context) (salutation.Service, error) {
	if m.ServiceFunc != nil {
		return m.ServiceFunc(ctx)
	}
	return nil, nil
}

// Policy returns a policy using the mock function or the default policy.
func (m *Mock) Policy() (*reconcile.Policy, error) {
	if m.PolicyFunc != nil {
		return m.PolicyFunc()
	}
	return reconcile.New()
}

// ServerConfig returns the mock server config or the defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns Format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string {
	return "unknown"
}

// Date returns "unknown".
func (m *Mock) Date() string {
	return "unknown"
}

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string {
	return "test"
}

var _ Interface = (*Mock)(nil)
