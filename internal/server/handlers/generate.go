// Package handlers provides HTTP request handlers for the salutation API.
//
// Handlers are organized by resource:
//
//   - contacts.go: contact CRUD, display, reset
//   - operations.go: backfill and split
//   - fields.go: merge and recipient field registries
//   - health.go: liveness
//   - realtime.go: WebSocket and SSE update streams
//
// Every JSON response uses the response package envelope. Service errors
// go through response.ErrorFromType so typed errors keep their status.
package handlers

//go:generate gomarkdoc --output README.md .
