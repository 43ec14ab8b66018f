package reconcile

import (
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/names"
)

// Policy reconciles derived name parts against manual overrides.
type Policy struct {
	strategy Strategy
	splitter names.Splitter
}

// Option configures a Policy
type Option func(*Policy) error

// New creates a Policy. The default strategy is NewDiffersStrategy and the
// default locale is empty (given-first ordering).
func New(opts ...Option) (*Policy, error) {
	p := &Policy{
		strategy: NewDiffersStrategy(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// WithStrategy sets the override strategy.
func WithStrategy(s Strategy) Option {
	return func(p *Policy) error {
		if s == nil {
			return errors.NewConfigError("reconcile", "strategy must not be nil", nil)
		}
		p.strategy = s
		return nil
	}
}

// WithDefaultLocale sets the locale used when a contact has none.
func WithDefaultLocale(locale string) Option {
	return func(p *Policy) error {
		p.splitter.DefaultLocale = locale
		return nil
	}
}

// WithSplitter replaces the splitter wholesale.
func WithSplitter(s names.Splitter) Option {
	return func(p *Policy) error {
		p.splitter = s
		return nil
	}
}

// Strategy returns the policy's override strategy.
func (p *Policy) Strategy() Strategy {
	return p.strategy
}

// DefaultLocale returns the locale used when a contact has none.
func (p *Policy) DefaultLocale() string {
	return p.splitter.DefaultLocale
}

// Derive splits the contact's current name with its locale, falling back to
// the policy's default locale.
func (p *Policy) Derive(c contacts.Contact) names.Parts {
	return p.splitter.Split(c.Name, c.Locale, c.Title)
}

// Create reconciles the changes a new contact is created with. A missing
// category defaults to organization. Organizations pass through untouched.
func (p *Policy) Create(in contacts.Changes) Result {
	if in.Category == nil {
		in = in.WithCategory(contacts.DefaultCategory)
	}
	return p.edit(EventCreate, contacts.Contact{}, in)
}

// Update reconciles changes to an existing contact. Auto fields follow the
// post-update name, locale and title. Manual fields are left alone unless the
// change edits them. A field set directly is pinned or released according to
// the strategy.
func (p *Policy) Update(cur contacts.Contact, in contacts.Changes) Result {
	return p.edit(EventUpdate, cur, in)
}

// FillBlank derives values for fields that are empty and not pinned. Display
// lookups use it.
func (p *Policy) FillBlank(cur contacts.Contact) Result {
	return p.fill(EventFillBlank, cur)
}

// Backfill applies the FillBlank rule for the bulk backfill.
func (p *Policy) Backfill(cur contacts.Contact) Result {
	return p.fill(EventBackfill, cur)
}

// Reset recomputes all three fields and marks them Auto. The result always
// carries every value and flag so they are written together.
func (p *Policy) Reset(cur contacts.Contact) Result {
	res := Result{Event: EventReset}
	if !cur.IsPerson() {
		return res
	}

	parts := p.Derive(cur)
	res.Parts = parts
	for _, f := range contacts.Fields() {
		value := partOf(f, parts)
		res.Changes.SetValue(f, value)
		res.Changes.SetManual(f, false)
		res.record(f, cur, value, false, ReasonReset)
	}
	return res
}

func (p *Policy) edit(event Event, cur contacts.Contact, in contacts.Changes) Result {
	res := Result{Event: event, Changes: in}

	next := cur
	in.Apply(&next)
	if !next.IsPerson() {
		return res
	}

	parts := p.Derive(next)
	res.Parts = parts
	for _, f := range contacts.Fields() {
		value, manual, reason := p.decide(f, cur, in, target(f, parts, next))

		contacts.Changes{}.WithValue(f, value).WithManual(f, manual).Apply(&next)
		if value != cur.Value(f) || in.Value(f) != nil {
			res.Changes.SetValue(f, value)
		}
		if manual != cur.Manual(f) || in.Manual(f) != nil {
			res.Changes.SetManual(f, manual)
		}
		res.record(f, cur, value, manual, reason)
	}
	return res
}

func (p *Policy) decide(f Field, cur contacts.Contact, in contacts.Changes, derived string) (string, bool, string) {
	edited := in.Value(f)

	if flag := in.Manual(f); flag != nil {
		if !*flag {
			return derived, false, ReasonFlagCleared
		}
		if edited != nil {
			return *edited, true, ReasonFlagSet
		}
		return cur.Value(f), true, ReasonFlagSet
	}

	if edited != nil {
		if p.strategy.Pin(*edited, derived) {
			return *edited, true, ReasonEditDiffers
		}
		return derived, false, ReasonEditMatches
	}

	if cur.Manual(f) {
		return cur.Value(f), true, ReasonKeptManual
	}
	return derived, false, ReasonDerived
}

func (p *Policy) fill(event Event, cur contacts.Contact) Result {
	res := Result{Event: event}
	if !cur.IsPerson() {
		return res
	}

	parts := p.Derive(cur)
	res.Parts = parts
	next := cur
	for _, f := range next.Blank() {
		value := target(f, parts, next)
		if value == "" {
			continue
		}
		contacts.Changes{}.WithValue(f, value).Apply(&next)
		res.Changes.SetValue(f, value)
		res.record(f, cur, value, false, ReasonFilledBlank)
	}
	return res
}

// target is the value an Auto field takes. The salutation follows the given
// and family values already settled on next, so a pinned given name carries
// into an Auto salutation.
func target(f Field, parts names.Parts, next contacts.Contact) string {
	if f == contacts.FieldSalutation {
		return names.Salutation(next.Title, next.GivenName, next.FamilyName)
	}
	return partOf(f, parts)
}

func partOf(f Field, parts names.Parts) string {
	switch f {
	case contacts.FieldGiven:
		return parts.Given
	case contacts.FieldFamily:
		return parts.Family
	case contacts.FieldSalutation:
		return parts.Salutation
	}
	return ""
}
