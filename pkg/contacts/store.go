package contacts

import "context"

// AtomicFunc computes the changes for one record. Returning an error rolls
// the unit back and nothing is persisted.
type AtomicFunc func(ctx context.Context, current Contact) (Changes, error)

// Store persists contacts.
//
// Implementations return errors matching errors.ErrNotFound for unknown IDs
// and errors.ErrAlreadyExists when inserting a duplicate ID.
type Store interface {
	// Insert stores a new contact.
	Insert(ctx context.Context, c Contact) error

	// Get returns the contact with the given ID.
	Get(ctx context.Context, id string) (Contact, error)

	// Update applies changes to a contact and returns the stored result.
	Update(ctx context.Context, id string, changes Changes) (Contact, error)

	// Delete removes a contact.
	Delete(ctx context.Context, id string) error

	// Search returns the contacts matching q, oldest first.
	Search(ctx context.Context, q Query) ([]Contact, error)

	// Atomic loads one contact, passes it to fn and persists the returned
	// changes as a single unit: every field and flag is written, or none is.
	Atomic(ctx context.Context, id string, fn AtomicFunc) (Contact, error)

	// Close releases the store's resources.
	Close() error
}
