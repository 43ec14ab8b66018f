package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation"
	"github.com/productioncity/salutation/internal/server/events"
	"github.com/productioncity/salutation/internal/server/sse"
	ws "github.com/productioncity/salutation/internal/server/websocket"
	"github.com/productioncity/salutation/pkg/constants"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	service        salutation.Service
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startOnce      sync.Once
	startTime      time.Time
}

// New creates a server over svc and connects the service hooks to the
// event broker.
func New(svc salutation.Service, cfg Config, logger *zerolog.Logger) (*Server, error) {
	if svc == nil {
		return nil, errors.NewConfigError("server", "service is required", nil)
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		service:        svc,
		broker:         events.NewBroker(logger),
		wsHub:          ws.NewHub(logger),
		sseBroadcaster: sse.NewBroadcaster(logger),
		logger:         logger,
		config:         cfg.withDefaults(),
		ctx:            ctx,
		cancel:         cancel,
		startTime:      time.Now(),
	}

	s.broker.Subscribe(s.sseBroadcaster)
	s.broker.Subscribe(s.wsHub)
	s.connectHooks()

	logger.Debug().
		Str("addr", s.config.Addr).
		Str("prefix", s.config.PathPrefix).
		Msg("Server instance created")
	return s, nil
}

// connectHooks publishes service reconciliation events to the broker.
func (s *Server) connectHooks() {
	s.service.OnDerived(func(c contacts.Contact, decisions []reconcile.Decision) {
		s.broker.Publish(events.ContactDerived, c.ID, map[string]any{
			"contact":   c,
			"decisions": decisions,
		})
	})

	s.service.OnOverride(func(c contacts.Contact, field reconcile.Field) {
		s.broker.Publish(events.ContactPinned, c.ID, map[string]any{
			"field": field,
			"value": c.Value(field),
		})
	})
}

// Start runs the broker and the WebSocket hub. Calling it again is a
// no-op.
func (s *Server) Start() {
	s.startOnce.Do(func() {
		go s.broker.Run(s.ctx)
		go s.wsHub.Run(s.ctx)
		s.logger.Debug().Msg("Background services started")
	})
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe starts background services and serves until ctx is
// canceled, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.Start()

	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		_ = s.Shutdown(context.Background())
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	// Streams never finish on their own; end them before draining.
	_ = s.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("Server stopped gracefully")
	return nil
}

// Shutdown stops background services and closes open event streams.
func (s *Server) Shutdown(_ context.Context) error {
	s.cancel()
	return s.sseBroadcaster.Close()
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
