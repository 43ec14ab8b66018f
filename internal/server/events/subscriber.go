package events

// Subscriber consumes broker events. Send must not block for long; slow
// transports buffer or drop on their side.
type Subscriber interface {
	Send(Event) error
	Close() error
}

// SubscriberFunc adapts a function to a Subscriber with a no-op Close.
type SubscriberFunc func(Event) error

// Send calls f(e).
func (f SubscriberFunc) Send(e Event) error { return f(e) }

// Close does nothing.
func (f SubscriberFunc) Close() error { return nil }
