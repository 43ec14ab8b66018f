package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockSubscriber records every event it receives.
type mockSubscriber struct {
	mu     sync.Mutex
	events []Event
	closed bool
	err    error
}

func (m *mockSubscriber) Send(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSubscriber) received() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func (m *mockSubscriber) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// waitFor polls cond until it holds or a second passes.
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

func startBroker(t *testing.T) (*Broker, context.CancelFunc) {
	t.Helper()
	logger := zerolog.Nop()
	b := NewBroker(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)
	t.Cleanup(cancel)
	return b, cancel
}

// TestBroker_SubscribeBeforeRun verifies Subscribe does not block when the
// run loop has not started yet.
func TestBroker_SubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		b.Subscribe(&mockSubscriber{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Subscribe blocked before Run")
	}
}

// TestBroker_PublishOrder verifies events arrive in publish order with
// increasing sequence numbers.
func TestBroker_PublishOrder(t *testing.T) {
	b, _ := startBroker(t)

	sub := &mockSubscriber{}
	b.Subscribe(sub)
	waitFor(t, func() bool { return b.SubscriberCount() == 1 })

	first := b.Publish(ContactDerived, "c-1", map[string]any{"event": "create"})
	second := b.Publish(ContactPinned, "c-1", map[string]any{"field": "name_given"})

	if second.Seq != first.Seq+1 {
		t.Errorf("expected consecutive seq, got %d then %d", first.Seq, second.Seq)
	}

	waitFor(t, func() bool { return len(sub.received()) == 2 })
	got := sub.received()
	if got[0].Type != ContactDerived || got[1].Type != ContactPinned {
		t.Errorf("unexpected order: %s, %s", got[0].Type, got[1].Type)
	}
	if got[0].ContactID != "c-1" {
		t.Errorf("expected contact id c-1, got %q", got[0].ContactID)
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

// TestBroker_Unsubscribe closes and removes the subscriber.
func TestBroker_Unsubscribe(t *testing.T) {
	b, _ := startBroker(t)

	keep := &mockSubscriber{}
	drop := &mockSubscriber{}
	b.Subscribe(keep)
	unsubscribe := b.Subscribe(drop)
	waitFor(t, func() bool { return b.SubscriberCount() == 2 })

	unsubscribe()
	unsubscribe()
	waitFor(t, func() bool { return b.SubscriberCount() == 1 })

	if !drop.isClosed() {
		t.Error("expected unsubscribed subscriber to be closed")
	}

	b.Publish(BackfillCompleted, "", nil)
	waitFor(t, func() bool { return len(keep.received()) == 1 })
	if n := len(drop.received()); n != 0 {
		t.Errorf("expected no events after unsubscribe, got %d", n)
	}
}

// TestBroker_SubscriberErrorDoesNotStopDelivery keeps delivering to the
// remaining subscribers.
func TestBroker_SubscriberErrorDoesNotStopDelivery(t *testing.T) {
	b, _ := startBroker(t)

	failing := &mockSubscriber{err: errors.New("write failed")}
	healthy := &mockSubscriber{}
	b.Subscribe(failing)
	b.Subscribe(healthy)
	waitFor(t, func() bool { return b.SubscriberCount() == 2 })

	b.Publish(ContactDerived, "c-2", nil)
	waitFor(t, func() bool { return len(healthy.received()) == 1 })
}

// TestBroker_Shutdown closes every subscriber on cancel.
func TestBroker_Shutdown(t *testing.T) {
	b, cancel := startBroker(t)

	sub1 := &mockSubscriber{}
	sub2 := &mockSubscriber{}
	b.Subscribe(sub1)
	b.Subscribe(sub2)
	waitFor(t, func() bool { return b.SubscriberCount() == 2 })

	cancel()
	waitFor(t, func() bool { return sub1.isClosed() && sub2.isClosed() })
	if n := b.SubscriberCount(); n != 0 {
		t.Errorf("expected 0 subscribers after shutdown, got %d", n)
	}
}

// TestBroker_PublishDropsWhenFull never blocks the publisher.
func TestBroker_PublishDropsWhenFull(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		for i := 0; i < eventBuffer+10; i++ {
			b.Publish(ContactDerived, "c-3", nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full channel")
	}
}

// TestSubscriberFunc adapts a plain function.
func TestSubscriberFunc(t *testing.T) {
	var got Event
	sub := SubscriberFunc(func(e Event) error {
		got = e
		return nil
	})

	if err := sub.Send(Event{Type: ClientConnected}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Type != ClientConnected {
		t.Errorf("expected client.connected, got %s", got.Type)
	}
	if err := sub.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
