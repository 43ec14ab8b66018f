// Package memory is an in-process contacts.Store for tests and the CLI's
// scratch mode. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
)

var _ contacts.Store = (*Store)(nil)

// Store holds contacts in a map guarded by a RWMutex. Reads return copies.
type Store struct {
	mu       sync.RWMutex
	contacts map[string]contacts.Contact
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		contacts: make(map[string]contacts.Contact),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert stores a new contact.
func (s *Store) Insert(ctx context.Context, c contacts.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contacts[c.ID]; exists {
		return errors.NewAlreadyExistsError("contact", c.ID)
	}

	now := s.now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	s.contacts[c.ID] = c
	return nil
}

// Get returns the contact with the given ID.
func (s *Store) Get(ctx context.Context, id string) (contacts.Contact, error) {
	if err := ctx.Err(); err != nil {
		return contacts.Contact{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return contacts.Contact{}, errors.NewNotFoundError("contact", id)
	}
	return c, nil
}

// Update applies changes to a contact.
func (s *Store) Update(ctx context.Context, id string, changes contacts.Changes) (contacts.Contact, error) {
	return s.Atomic(ctx, id, func(context.Context, contacts.Contact) (contacts.Changes, error) {
		return changes, nil
	})
}

// Delete removes a contact.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return errors.NewNotFoundError("contact", id)
	}
	delete(s.contacts, id)
	return nil
}

// Search returns matching contacts ordered by creation time, then ID.
func (s *Store) Search(ctx context.Context, q contacts.Query) ([]contacts.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]contacts.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		if q.Matches(c) {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Atomic runs fn under the write lock. fn must not call back into the store.
func (s *Store) Atomic(ctx context.Context, id string, fn contacts.AtomicFunc) (contacts.Contact, error) {
	if err := ctx.Err(); err != nil {
		return contacts.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.contacts[id]
	if !ok {
		return contacts.Contact{}, errors.NewNotFoundError("contact", id)
	}

	changes, err := fn(ctx, cur)
	if err != nil {
		return contacts.Contact{}, err
	}
	if changes.Empty() {
		return cur, nil
	}

	next := cur
	changes.Apply(&next)
	if err := next.Validate(); err != nil {
		return contacts.Contact{}, err
	}
	next.UpdatedAt = s.now()
	s.contacts[id] = next
	return next, nil
}

// Len returns the number of stored contacts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
