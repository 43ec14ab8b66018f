package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const (
	// eventBuffer bounds events waiting for the run loop. Publish drops
	// when it is full.
	eventBuffer = 256

	// registerBuffer lets Subscribe return before Run has started.
	registerBuffer = 16
)

// Broker distributes published events to every registered subscriber.
type Broker struct {
	seq    atomic.Uint64
	nextID atomic.Uint64

	events     chan Event
	register   chan registration
	unregister chan uint64

	mu          sync.RWMutex
	subscribers map[uint64]Subscriber

	now    func() time.Time
	logger *zerolog.Logger
}

type registration struct {
	id  uint64
	sub Subscriber
}

// NewBroker creates a new event broker.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		events:      make(chan Event, eventBuffer),
		register:    make(chan registration, registerBuffer),
		unregister:  make(chan uint64, registerBuffer),
		subscribers: make(map[uint64]Subscriber),
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// Run delivers events until ctx is canceled, then closes every
// subscriber. Call it in its own goroutine.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for id, sub := range b.subscribers {
				_ = sub.Close()
				delete(b.subscribers, id)
			}
			b.mu.Unlock()
			b.logger.Info().Msg("Event broker shut down")
			return

		case reg := <-b.register:
			b.mu.Lock()
			b.subscribers[reg.id] = reg.sub
			total := len(b.subscribers)
			b.mu.Unlock()
			b.logger.Debug().Int("total_subscribers", total).Msg("Subscriber registered")

		case id := <-b.unregister:
			b.mu.Lock()
			if sub, ok := b.subscribers[id]; ok {
				_ = sub.Close()
				delete(b.subscribers, id)
			}
			total := len(b.subscribers)
			b.mu.Unlock()
			b.logger.Debug().Int("total_subscribers", total).Msg("Subscriber unregistered")

		case event := <-b.events:
			b.deliver(event)
		}
	}
}

// deliver sends event to a snapshot of the subscribers, in order.
func (b *Broker) deliver(event Event) {
	b.mu.RLock()
	subs := make([]Subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(event); err != nil {
			b.logger.Warn().
				Err(err).
				Str("event_type", string(event.Type)).
				Msg("Failed to send event to subscriber")
		}
	}

	b.logger.Debug().
		Str("event_type", string(event.Type)).
		Uint64("seq", event.Seq).
		Int("subscribers", len(subs)).
		Msg("Event broadcasted")
}

// Publish queues an event for delivery and returns it. A full queue drops
// the event with a warning.
func (b *Broker) Publish(eventType EventType, contactID string, data any) Event {
	event := Event{
		Seq:       b.seq.Add(1),
		Type:      eventType,
		ContactID: contactID,
		Timestamp: b.now(),
		Data:      data,
	}

	select {
	case b.events <- event:
	default:
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Uint64("seq", event.Seq).
			Msg("Event channel full, event dropped")
	}
	return event
}

// Subscribe registers sub and returns a function that unregisters it.
func (b *Broker) Subscribe(sub Subscriber) (unsubscribe func()) {
	id := b.nextID.Add(1)
	b.register <- registration{id: id, sub: sub}

	var once sync.Once
	return func() {
		once.Do(func() { b.unregister <- id })
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
