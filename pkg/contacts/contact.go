// Package contacts defines the contact record, the change set applied to it
// and the Store contract the salutation service persists through.
package contacts

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/productioncity/salutation/pkg/errors"
)

// Category distinguishes individuals from companies. Only people get name
// parts derived.
type Category string

// Categories.
const (
	Person       Category = "person"
	Organization Category = "organization"
)

// DefaultCategory is applied on create when no category is given.
const DefaultCategory = Organization

// String returns the string representation of a category.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == Person || c == Organization
}

// ParseCategory parses a category name, case-insensitively. "company" is
// accepted as an alias for organization.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "person", "individual":
		return Person, nil
	case "organization", "organisation", "company":
		return Organization, nil
	}
	return "", errors.NewValidationError("category", s, "must be person or organization")
}

// Contact is a stored contact record. Given, family and salutation are the
// derived name parts; each has a manual flag that pins it against
// re-derivation.
type Contact struct {
	ID       string   `json:"id" yaml:"id"`
	Category Category `json:"category" yaml:"category"`
	Name     string   `json:"name" yaml:"name"`
	Locale   string   `json:"locale,omitempty" yaml:"locale,omitempty"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`

	GivenName  string `json:"name_given" yaml:"name_given"`
	FamilyName string `json:"name_family" yaml:"name_family"`
	Salutation string `json:"name_salutation" yaml:"name_salutation"`

	GivenManual      bool `json:"is_given_name_manual" yaml:"is_given_name_manual"`
	FamilyManual     bool `json:"is_family_name_manual" yaml:"is_family_name_manual"`
	SalutationManual bool `json:"is_salutation_manual" yaml:"is_salutation_manual"`

	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// IsPerson reports whether name parts are derived for this contact.
func (c Contact) IsPerson() bool {
	return c.Category == Person
}

// Display returns the contact's primary display label.
func (c Contact) Display() string {
	return c.Name
}

// Value returns the current value of a derived field.
func (c Contact) Value(f Field) string {
	switch f {
	case FieldGiven:
		return c.GivenName
	case FieldFamily:
		return c.FamilyName
	case FieldSalutation:
		return c.Salutation
	}
	return ""
}

// Manual reports whether a derived field is pinned.
func (c Contact) Manual(f Field) bool {
	switch f {
	case FieldGiven:
		return c.GivenManual
	case FieldFamily:
		return c.FamilyManual
	case FieldSalutation:
		return c.SalutationManual
	}
	return false
}

// Blank returns the derived fields that are empty and not pinned.
func (c Contact) Blank() []Field {
	var out []Field
	for _, f := range Fields() {
		if c.Value(f) == "" && !c.Manual(f) {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks the invariants every stored contact must satisfy.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.NewValidationError("id", c.ID, "is required")
	}
	if !c.Category.Valid() {
		return errors.NewValidationError("category", c.Category, "must be person or organization")
	}
	return nil
}

// Query selects contacts. An empty Category matches every contact.
type Query struct {
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// Matches reports whether c satisfies the query.
func (q Query) Matches(c Contact) bool {
	return q.Category == "" || q.Category == c.Category
}

// NewID returns a fresh contact ID.
func NewID() string {
	return uuid.NewString()
}
