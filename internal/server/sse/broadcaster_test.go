package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation/internal/server/events"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

// TestBroadcaster_Stream connects a real client and reads frames.
func TestBroadcaster_Stream(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	srv := httptest.NewServer(b)
	defer srv.Close()
	defer func() { _ = b.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("expected text/event-stream, got %s", ct)
	}

	reader := bufio.NewReader(resp.Body)
	frame := readFrame(t, reader)
	if !strings.Contains(frame, "event: client.connected") {
		t.Errorf("expected connected frame, got %q", frame)
	}

	waitFor(t, func() bool { return b.ClientCount() == 1 })

	if err := b.Send(events.Event{Seq: 7, Type: events.ContactPinned, ContactID: "c-1"}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	frame = readFrame(t, reader)
	if !strings.Contains(frame, "event: contact.pinned") {
		t.Errorf("missing event line: %q", frame)
	}
	if !strings.Contains(frame, "id: 7") {
		t.Errorf("missing id line: %q", frame)
	}
	if !strings.Contains(frame, `"contact_id":"c-1"`) {
		t.Errorf("missing data: %q", frame)
	}
}

// TestBroadcaster_CloseEndsStreams returns from ServeHTTP on Close.
func TestBroadcaster_CloseEndsStreams(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/updates/stream", nil)

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(w, req)
		close(done)
	}()

	waitFor(t, func() bool { return b.ClientCount() == 1 })
	_ = b.Close()
	_ = b.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ServeHTTP did not return after Close")
	}
	if n := b.ClientCount(); n != 0 {
		t.Errorf("expected 0 clients, got %d", n)
	}
}

// TestBroadcaster_SendWithoutClients is a no-op.
func TestBroadcaster_SendWithoutClients(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)

	if err := b.Send(events.Event{Type: events.ContactDerived}); err != nil {
		t.Errorf("Send: %v", err)
	}
}

func readFrame(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var sb strings.Builder
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("reading frame: %v", err)
		}
		if line == "\n" {
			return sb.String()
		}
		sb.WriteString(line)
	}
}
