package contacts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productioncity/salutation/pkg/contacts"
)

func TestChangesEmptyAndFields(t *testing.T) {
	var c contacts.Changes
	assert.True(t, c.Empty())
	assert.Nil(t, c.Fields())

	c = c.WithName("Jane Smith").
		WithTitle("Dr.").
		WithValue(contacts.FieldSalutation, "Dr. Smith").
		WithManual(contacts.FieldGiven, true)

	assert.False(t, c.Empty())
	assert.Equal(t, []string{"name", "title", "name_salutation", "is_given_name_manual"}, c.Fields())
	assert.True(t, c.Has(contacts.FieldGiven))
	assert.True(t, c.Has(contacts.FieldSalutation))
	assert.False(t, c.Has(contacts.FieldFamily))
	assert.True(t, c.NameInputsChanged())
}

func TestChangesApply(t *testing.T) {
	contact := contacts.Contact{
		ID:         "c-1",
		Category:   contacts.Person,
		Name:       "Jane Smith",
		GivenName:  "Jane",
		FamilyName: "Smith",
		Salutation: "Jane",
	}

	contacts.Changes{}.
		WithTitle("Dr.").
		WithValue(contacts.FieldSalutation, "Dr. Smith").
		WithValue(contacts.FieldGiven, "").
		WithManual(contacts.FieldFamily, true).
		Apply(&contact)

	assert.Equal(t, "Dr.", contact.Title)
	assert.Equal(t, "Dr. Smith", contact.Salutation)
	assert.Equal(t, "", contact.GivenName, "pointer to zero value clears")
	assert.Equal(t, "Smith", contact.FamilyName)
	assert.True(t, contact.FamilyManual)
	assert.Equal(t, "Jane Smith", contact.Name)
}

func TestChangesMerge(t *testing.T) {
	base := contacts.Changes{}.WithName("Alex Doe").WithValue(contacts.FieldGiven, "Lex")
	over := contacts.Changes{}.WithName("Alex Roe").WithManual(contacts.FieldGiven, true)

	merged := base.Merge(over)

	require.NotNil(t, merged.Name)
	assert.Equal(t, "Alex Roe", *merged.Name)
	require.NotNil(t, merged.GivenName)
	assert.Equal(t, "Lex", *merged.GivenName)
	require.NotNil(t, merged.GivenManual)
	assert.True(t, *merged.GivenManual)

	// The receiver is not modified.
	assert.Equal(t, "Alex Doe", *base.Name)
	assert.Nil(t, base.GivenManual)
}

func TestChangesCopiesAreIndependent(t *testing.T) {
	a := contacts.Changes{}.WithValue(contacts.FieldGiven, "A")
	b := a.WithValue(contacts.FieldGiven, "B")

	assert.Equal(t, "A", *a.Value(contacts.FieldGiven))
	assert.Equal(t, "B", *b.Value(contacts.FieldGiven))
}
