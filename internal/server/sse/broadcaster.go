// Package sse streams broker events to HTTP clients as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation/internal/server/events"
)

const (
	clientBuffer = 64

	// KeepAlive is the interval between comment lines on an idle stream.
	KeepAlive = 30 * time.Second
)

// Broadcaster manages SSE client streams. It implements events.Subscriber.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan events.Event]struct{}
	done    chan struct{}
	once    sync.Once

	keepAlive time.Duration
	logger    *zerolog.Logger
}

// NewBroadcaster creates a new SSE broadcaster.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients:   make(map[chan events.Event]struct{}),
		done:      make(chan struct{}),
		keepAlive: KeepAlive,
		logger:    logger,
	}
}

// Send queues event for every connected client. A client whose buffer is
// full misses the event.
func (b *Broadcaster) Send(event events.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for client := range b.clients {
		select {
		case client <- event:
		default:
			b.logger.Warn().
				Uint64("seq", event.Seq).
				Msg("SSE client buffer full, event skipped")
		}
	}
	return nil
}

// Close ends every open stream. It is safe to call more than once.
func (b *Broadcaster) Close() error {
	b.once.Do(func() { close(b.done) })
	return nil
}

// ClientCount returns the number of connected SSE clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) add() chan events.Event {
	client := make(chan events.Event, clientBuffer)
	b.mu.Lock()
	b.clients[client] = struct{}{}
	total := len(b.clients)
	b.mu.Unlock()
	b.logger.Info().Int("total_clients", total).Msg("SSE client connected")
	return client
}

func (b *Broadcaster) remove(client chan events.Event) {
	b.mu.Lock()
	delete(b.clients, client)
	total := len(b.clients)
	b.mu.Unlock()
	b.logger.Info().Int("total_clients", total).Msg("SSE client disconnected")
}

// ServeHTTP streams events until the client goes away or the broadcaster
// is closed.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := b.add()
	defer b.remove(client)

	b.write(w, flusher, events.Event{
		Type:      events.ClientConnected,
		Timestamp: time.Now().UTC(),
		Data:      map[string]any{"message": "Connected to contact updates stream"},
	})

	b.stream(r.Context(), w, flusher, client)
}

func (b *Broadcaster) stream(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, client chan events.Event) {
	ticker := time.NewTicker(b.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case event := <-client:
			b.write(w, flusher, event)
		case <-ticker.C:
			_, _ = fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case <-ctx.Done():
			return
		case <-b.done:
			return
		}
	}
}

// write emits one SSE frame: event, id and a JSON data line.
func (b *Broadcaster) write(w http.ResponseWriter, flusher http.Flusher, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal SSE event data")
		return
	}

	_, _ = fmt.Fprintf(w, "event: %s\n", event.Type)
	if event.Seq > 0 {
		_, _ = fmt.Fprintf(w, "id: %s\n", strconv.FormatUint(event.Seq, 10))
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
