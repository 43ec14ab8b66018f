package contacts

import (
	"github.com/productioncity/salutation/internal/utils/ptr"
)

// Changes is a partial update. A nil pointer means "not part of this
// change"; a pointer to the zero value clears the field.
type Changes struct {
	Category *Category `json:"category,omitempty" yaml:"category,omitempty"`
	Name     *string   `json:"name,omitempty" yaml:"name,omitempty"`
	Locale   *string   `json:"locale,omitempty" yaml:"locale,omitempty"`
	Title    *string   `json:"title,omitempty" yaml:"title,omitempty"`

	GivenName  *string `json:"name_given,omitempty" yaml:"name_given,omitempty"`
	FamilyName *string `json:"name_family,omitempty" yaml:"name_family,omitempty"`
	Salutation *string `json:"name_salutation,omitempty" yaml:"name_salutation,omitempty"`

	GivenManual      *bool `json:"is_given_name_manual,omitempty" yaml:"is_given_name_manual,omitempty"`
	FamilyManual     *bool `json:"is_family_name_manual,omitempty" yaml:"is_family_name_manual,omitempty"`
	SalutationManual *bool `json:"is_salutation_manual,omitempty" yaml:"is_salutation_manual,omitempty"`
}

// WithCategory returns a copy of c with the category set.
func (c Changes) WithCategory(cat Category) Changes {
	c.Category = &cat
	return c
}

// WithName returns a copy of c with the full name set.
func (c Changes) WithName(name string) Changes {
	c.Name = ptr.String(name)
	return c
}

// WithLocale returns a copy of c with the locale set.
func (c Changes) WithLocale(locale string) Changes {
	c.Locale = ptr.String(locale)
	return c
}

// WithTitle returns a copy of c with the title set.
func (c Changes) WithTitle(title string) Changes {
	c.Title = ptr.String(title)
	return c
}

// WithValue returns a copy of c with a derived field set.
func (c Changes) WithValue(f Field, v string) Changes {
	c.SetValue(f, v)
	return c
}

// WithManual returns a copy of c with a manual flag set.
func (c Changes) WithManual(f Field, manual bool) Changes {
	c.SetManual(f, manual)
	return c
}

// Value returns the change to a derived field, or nil.
func (c Changes) Value(f Field) *string {
	switch f {
	case FieldGiven:
		return c.GivenName
	case FieldFamily:
		return c.FamilyName
	case FieldSalutation:
		return c.Salutation
	}
	return nil
}

// Manual returns the change to a manual flag, or nil.
func (c Changes) Manual(f Field) *bool {
	switch f {
	case FieldGiven:
		return c.GivenManual
	case FieldFamily:
		return c.FamilyManual
	case FieldSalutation:
		return c.SalutationManual
	}
	return nil
}

// SetValue sets a derived field.
func (c *Changes) SetValue(f Field, v string) {
	switch f {
	case FieldGiven:
		c.GivenName = ptr.String(v)
	case FieldFamily:
		c.FamilyName = ptr.String(v)
	case FieldSalutation:
		c.Salutation = ptr.String(v)
	}
}

// SetManual sets a manual flag.
func (c *Changes) SetManual(f Field, manual bool) {
	switch f {
	case FieldGiven:
		c.GivenManual = ptr.Bool(manual)
	case FieldFamily:
		c.FamilyManual = ptr.Bool(manual)
	case FieldSalutation:
		c.SalutationManual = ptr.Bool(manual)
	}
}

// Has reports whether the change touches f's value or its manual flag.
func (c Changes) Has(f Field) bool {
	return c.Value(f) != nil || c.Manual(f) != nil
}

// NameInputsChanged reports whether name, locale, title or category are set.
func (c Changes) NameInputsChanged() bool {
	return c.Name != nil || c.Locale != nil || c.Title != nil || c.Category != nil
}

// Empty reports whether the change set touches nothing.
func (c Changes) Empty() bool {
	return len(c.Fields()) == 0
}

// Fields lists the column names the change set touches, in column order.
func (c Changes) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(c.Category != nil, "category")
	add(c.Name != nil, "name")
	add(c.Locale != nil, "locale")
	add(c.Title != nil, "title")
	for _, f := range Fields() {
		add(c.Value(f) != nil, f.String())
	}
	for _, f := range Fields() {
		add(c.Manual(f) != nil, f.ManualColumn())
	}
	return out
}

// Merge returns c overlaid with every field set in o.
func (c Changes) Merge(o Changes) Changes {
	if o.Category != nil {
		c.Category = o.Category
	}
	if o.Name != nil {
		c.Name = o.Name
	}
	if o.Locale != nil {
		c.Locale = o.Locale
	}
	if o.Title != nil {
		c.Title = o.Title
	}
	for _, f := range Fields() {
		if v := o.Value(f); v != nil {
			c.SetValue(f, *v)
		}
		if m := o.Manual(f); m != nil {
			c.SetManual(f, *m)
		}
	}
	return c
}

// Apply writes every set field onto contact.
func (c Changes) Apply(contact *Contact) {
	if c.Category != nil {
		contact.Category = *c.Category
	}
	if c.Name != nil {
		contact.Name = *c.Name
	}
	if c.Locale != nil {
		contact.Locale = *c.Locale
	}
	if c.Title != nil {
		contact.Title = *c.Title
	}
	if c.GivenName != nil {
		contact.GivenName = *c.GivenName
	}
	if c.FamilyName != nil {
		contact.FamilyName = *c.FamilyName
	}
	if c.Salutation != nil {
		contact.Salutation = *c.Salutation
	}
	if c.GivenManual != nil {
		contact.GivenManual = *c.GivenManual
	}
	if c.FamilyManual != nil {
		contact.FamilyManual = *c.FamilyManual
	}
	if c.SalutationManual != nil {
		contact.SalutationManual = *c.SalutationManual
	}
}
