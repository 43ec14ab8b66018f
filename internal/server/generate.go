// Package server provides the HTTP API for salutation.
//
// The server wraps a salutation.Service: contacts CRUD, the display
// accessor, reset and backfill, the pure split endpoint and the field
// registries. Reconciliation events from the service hooks are pushed to
// SSE and WebSocket clients.
//
// Usage:
//
//	srv, err := server.New(svc, server.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	return srv.ListenAndServe(ctx)
package server

//go:generate gomarkdoc --output README.md .
