package salutation

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation/internal/metrics"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/fields"
	"github.com/productioncity/salutation/pkg/names"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// Service manages contacts and keeps their name parts reconciled.
type Service interface {
	// Create stores a new contact, deriving name parts for people
	Create(ctx context.Context, in contacts.Changes) (contacts.Contact, error)

	// CreateMany creates contacts in order and stops at the first failure
	CreateMany(ctx context.Context, ins []contacts.Changes) ([]contacts.Contact, error)

	// Update applies changes to a contact
	Update(ctx context.Context, id string, in contacts.Changes) (contacts.Contact, error)

	// Get returns a contact as stored
	Get(ctx context.Context, id string) (contacts.Contact, error)

	// List returns contacts matching q
	List(ctx context.Context, q contacts.Query) ([]contacts.Contact, error)

	// Delete removes a contact
	Delete(ctx context.Context, id string) error

	// Display returns the contact's display label, filling blank name parts
	// first
	Display(ctx context.Context, id string) (string, error)

	// Reset re-derives all name parts of the given contacts and unpins them
	Reset(ctx context.Context, ids ...string) error

	// Backfill fills blank name parts on every person
	Backfill(ctx context.Context) (BackfillReport, error)

	// Split derives name parts without touching the store
	Split(fullName, locale, title string) names.Parts

	// MergeFields returns the templating fields, name parts included
	MergeFields() []fields.Field

	// RecipientFields returns the campaign recipient fields and whether the
	// campaign integration is available
	RecipientFields() ([]fields.Field, bool)

	// Policy returns the reconciliation policy in use
	Policy() *reconcile.Policy

	// OnDerived registers a callback for derived-field changes
	OnDerived(DerivedHook)

	// OnOverride registers a callback for newly pinned fields
	OnOverride(OverrideHook)
}

// service is the internal implementation of the Service interface
type service struct {
	store   contacts.Store
	policy  *reconcile.Policy
	logger  *zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	merge            *fields.Registry
	recipient        *fields.Registry
	recipientEnabled bool

	*hooks
}

// New creates a Service over store. The campaign integration is probed once
// here.
func New(store contacts.Store, opts ...Option) (Service, error) {
	if store == nil {
		return nil, errors.NewConfigError("salutation", "store is required", nil)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	policy, err := reconcile.New(
		reconcile.WithStrategy(cfg.strategy),
		reconcile.WithDefaultLocale(cfg.defaultLocale),
	)
	if err != nil {
		return nil, fmt.Errorf("creating policy: %w", err)
	}

	s := &service{
		store:     store,
		policy:    policy,
		logger:    cfg.logger,
		metrics:   cfg.metrics,
		now:       cfg.now,
		merge:     fields.MergeFields(fields.NewRegistry(cfg.mergeBase...)),
		recipient: fields.NewRegistry(),
		hooks:     newHooks(),
	}
	s.recipientEnabled = fields.RegisterRecipientFields(cfg.host, s.recipient, s.logger)

	return s, nil
}

func (s *service) Create(ctx context.Context, in contacts.Changes) (contacts.Contact, error) {
	res := s.policy.Create(in)

	now := s.now()
	c := contacts.Contact{ID: contacts.NewID(), CreatedAt: now, UpdatedAt: now}
	res.Changes.Apply(&c)

	if err := s.store.Insert(ctx, c); err != nil {
		return contacts.Contact{}, fmt.Errorf("creating contact: %w", err)
	}

	s.logger.Debug().
		Str("contact_id", c.ID).
		Str("category", c.Category.String()).
		Msg("Created contact")
	s.observe(c, res)
	return c, nil
}

func (s *service) CreateMany(ctx context.Context, ins []contacts.Changes) ([]contacts.Contact, error) {
	out := make([]contacts.Contact, 0, len(ins))
	for i, in := range ins {
		c, err := s.Create(ctx, in)
		if err != nil {
			return out, fmt.Errorf("contact %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, in contacts.Changes) (contacts.Contact, error) {
	var res reconcile.Result
	c, err := s.store.Atomic(ctx, id, func(_ context.Context, cur contacts.Contact) (contacts.Changes, error) {
		res = s.policy.Update(cur, in)
		return res.Changes, nil
	})
	if err != nil {
		return contacts.Contact{}, fmt.Errorf("updating contact %s: %w", id, err)
	}

	s.observe(c, res)
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (contacts.Contact, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return contacts.Contact{}, fmt.Errorf("getting contact %s: %w", id, err)
	}
	return c, nil
}

func (s *service) List(ctx context.Context, q contacts.Query) ([]contacts.Contact, error) {
	out, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting contact %s: %w", id, err)
	}
	return nil
}

func (s *service) Display(ctx context.Context, id string) (string, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !s.policy.FillBlank(c).Changed() {
		return c.Display(), nil
	}

	var res reconcile.Result
	c, err = s.store.Atomic(ctx, id, func(_ context.Context, cur contacts.Contact) (contacts.Changes, error) {
		res = s.policy.FillBlank(cur)
		return res.Changes, nil
	})
	if err != nil {
		return "", fmt.Errorf("filling name parts of %s: %w", id, err)
	}

	s.observe(c, res)
	return c.Display(), nil
}

func (s *service) Reset(ctx context.Context, ids ...string) error {
	var errs []error
	for _, id := range ids {
		var res reconcile.Result
		c, err := s.store.Atomic(ctx, id, func(_ context.Context, cur contacts.Contact) (contacts.Changes, error) {
			res = s.policy.Reset(cur)
			return res.Changes, nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("resetting contact %s: %w", id, err))
			continue
		}
		if !res.Changed() {
			s.logger.Debug().Str("contact_id", id).Msg("Skipping reset of non-person contact")
			continue
		}

		s.metrics.IncrementReset()
		s.logger.Info().Str("contact_id", id).Msg("Reset name parts")
		s.observe(c, res)
	}
	return stderrors.Join(errs...)
}

func (s *service) Split(fullName, locale, title string) names.Parts {
	return s.policy.Derive(contacts.Contact{Name: fullName, Locale: locale, Title: title})
}

func (s *service) MergeFields() []fields.Field {
	return s.merge.List()
}

func (s *service) RecipientFields() ([]fields.Field, bool) {
	return s.recipient.List(), s.recipientEnabled
}

func (s *service) Policy() *reconcile.Policy {
	return s.policy
}

// observe records metrics and runs hooks for a persisted result.
func (s *service) observe(c contacts.Contact, res reconcile.Result) {
	if len(res.Decisions) == 0 {
		return
	}

	s.metrics.IncrementDerivation(res.Event.String())
	for _, f := range res.Overrides() {
		s.metrics.IncrementOverride(f.String())
		s.logger.Debug().
			Str("contact_id", c.ID).
			Str("field", f.String()).
			Msg("Field pinned")
	}
	s.hooks.trigger(c, res)
}
