package salutation_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productioncity/salutation"
	"github.com/productioncity/salutation/internal/metrics"
	"github.com/productioncity/salutation/internal/store/memory"
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/errors"
	"github.com/productioncity/salutation/pkg/fields"
	"github.com/productioncity/salutation/pkg/logging"
	"github.com/productioncity/salutation/pkg/reconcile"
)

func newService(t *testing.T, opts ...salutation.Option) (salutation.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	opts = append([]salutation.Option{salutation.WithLogger(logging.NewNopLogger())}, opts...)
	svc, err := salutation.New(store, opts...)
	require.NoError(t, err)
	return svc, store
}

func person(name string) contacts.Changes {
	return contacts.Changes{}.WithCategory(contacts.Person).WithName(name)
}

func TestNew(t *testing.T) {
	_, err := salutation.New(nil)
	assert.Error(t, err)

	_, err = salutation.New(memory.New(), salutation.WithStrategy(nil))
	assert.Error(t, err)

	_, err = salutation.New(memory.New(), salutation.WithClock(nil))
	assert.Error(t, err)
}

func TestPinnedGivenNameAcrossRename(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	c, err := svc.Create(ctx, person("Alex Doe").WithLocale("en_US").WithValue(contacts.FieldGiven, "Lex"))
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Lex", c.GivenName)
	assert.True(t, c.GivenManual)
	assert.Equal(t, "Doe", c.FamilyName)
	assert.False(t, c.FamilyManual)
	assert.Equal(t, "Lex", c.Salutation)
	assert.False(t, c.SalutationManual)

	c, err = svc.Update(ctx, c.ID, contacts.Changes{}.WithName("Alex Roe"))
	require.NoError(t, err)
	assert.Equal(t, "Lex", c.GivenName)
	assert.Equal(t, "Roe", c.FamilyName)
	assert.Equal(t, "Lex", c.Salutation)

	stored, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, stored)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newService(t, salutation.WithClock(func() time.Time { return clock }))

	t.Run("default category is organization", func(t *testing.T) {
		c, err := svc.Create(ctx, contacts.Changes{}.WithName("Acme Corp"))
		require.NoError(t, err)
		assert.Equal(t, contacts.Organization, c.Category)
		assert.Empty(t, c.GivenName)
		assert.Equal(t, clock, c.CreatedAt)
	})

	t.Run("default locale applies", func(t *testing.T) {
		svc, _ := newService(t, salutation.WithDefaultLocale("zh_CN"))
		c, err := svc.Create(ctx, person("Wang Wei"))
		require.NoError(t, err)
		assert.Equal(t, "Wei", c.GivenName)
		assert.Equal(t, "Wang", c.FamilyName)
	})

	t.Run("invalid category is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, contacts.Changes{}.WithCategory("robot"))
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("create many stops at first failure", func(t *testing.T) {
		created, err := svc.CreateMany(ctx, []contacts.Changes{
			person("John Smith"),
			contacts.Changes{}.WithCategory("robot"),
			person("Jane Smith"),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contact 1")
		require.Len(t, created, 1)
		assert.Equal(t, "John", created[0].GivenName)
	})
}

func TestUpdateMissing(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Update(context.Background(), "missing", contacts.Changes{}.WithName("x"))
	assert.True(t, errors.IsNotFound(err))
}

func TestDisplayFillsBlankFields(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	legacy := contacts.Contact{
		ID:               "legacy",
		Category:         contacts.Person,
		Name:             "Jane Smith",
		Title:            "Dr.",
		SalutationManual: true,
	}
	require.NoError(t, store.Insert(ctx, legacy))

	label, err := svc.Display(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", label)

	got, err := svc.Get(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.GivenName)
	assert.Equal(t, "Smith", got.FamilyName)
	assert.Equal(t, "", got.Salutation, "pinned blank field stays blank")

	before := got.UpdatedAt
	label, err = svc.Display(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", label)
	got, _ = svc.Get(ctx, "legacy")
	assert.Equal(t, before, got.UpdatedAt, "nothing left to fill, nothing written")

	_, err = svc.Display(ctx, "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	a, err := svc.Create(ctx, person("Jane Smith").
		WithTitle("Dr.").
		WithValue(contacts.FieldGiven, "J").
		WithValue(contacts.FieldSalutation, "Hi J"))
	require.NoError(t, err)
	org, err := svc.Create(ctx, contacts.Changes{}.WithName("Acme Corp").WithValue(contacts.FieldGiven, "x"))
	require.NoError(t, err)

	err = svc.Reset(ctx, a.ID, org.ID, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "missing")

	a, _ = svc.Get(ctx, a.ID)
	assert.Equal(t, "Jane", a.GivenName)
	assert.Equal(t, "Smith", a.FamilyName)
	assert.Equal(t, "Dr. Smith", a.Salutation)
	assert.False(t, a.GivenManual || a.FamilyManual || a.SalutationManual)

	org, _ = svc.Get(ctx, org.ID)
	assert.Equal(t, "x", org.GivenName, "organizations are not reset")
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	p, err := svc.Create(ctx, person("John Smith"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, contacts.Changes{}.WithName("Acme Corp"))
	require.NoError(t, err)

	people, err := svc.List(ctx, contacts.Query{Category: contacts.Person})
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, p.ID, people[0].ID)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.True(t, errors.IsNotFound(svc.Delete(ctx, p.ID)))
}

func TestSplit(t *testing.T) {
	svc, _ := newService(t, salutation.WithDefaultLocale("ko_KR"))
	assert.Equal(t, "Minjun", svc.Split("Kim Minjun", "", "").Given)
	assert.Equal(t, "Kim", svc.Split("Kim Minjun", "en_US", "").Given)
}

func TestHooks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	var derived []reconcile.Event
	var pinned []reconcile.Field
	svc.OnDerived(func(c contacts.Contact, decisions []reconcile.Decision) {
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, decisions)
		derived = append(derived, reconcile.EventCreate)
	})
	svc.OnOverride(func(_ contacts.Contact, f reconcile.Field) {
		pinned = append(pinned, f)
	})

	c, err := svc.Create(ctx, person("John Smith"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, c.ID, contacts.Changes{}.WithValue(contacts.FieldFamily, "Smythe"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, c.ID, contacts.Changes{}.WithTitle(""))
	require.NoError(t, err)

	assert.Len(t, derived, 2, "the no-op update fires nothing")
	assert.Equal(t, []reconcile.Field{contacts.FieldFamily}, pinned)
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(prometheus.NewRegistry())
	svc, _ := newService(t, salutation.WithMetrics(m))

	c, err := svc.Create(ctx, person("John Smith"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, c.ID, contacts.Changes{}.WithValue(contacts.FieldGiven, "Johnny"))
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx, c.ID))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Derivations.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Derivations.WithLabelValues("update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Derivations.WithLabelValues("reset")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Overrides.WithLabelValues("name_given")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resets))
}

func TestFieldRegistries(t *testing.T) {
	t.Run("campaign integration available", func(t *testing.T) {
		svc, _ := newService(t,
			salutation.WithHost(fields.StaticHost{"marketing.activity"}),
			salutation.WithMergeFields(fields.Field{Name: "email", Label: "Email"}),
		)

		merge := svc.MergeFields()
		require.Len(t, merge, 4)
		assert.Equal(t, "email", merge[0].Name)

		recipient, ok := svc.RecipientFields()
		assert.True(t, ok)
		assert.Equal(t, fields.NameParts(), recipient)
	})

	t.Run("campaign integration missing", func(t *testing.T) {
		logs := logging.NewTestLogger(t)
		svc, err := salutation.New(memory.New(),
			salutation.WithLogger(logs.Logger),
			salutation.WithHost(fields.StaticHost{"marketing.campaign"}),
		)
		require.NoError(t, err)

		recipient, ok := svc.RecipientFields()
		assert.False(t, ok)
		assert.Empty(t, recipient)
		assert.Len(t, svc.MergeFields(), 3)
		logs.AssertContains(t, "marketing.campaign")
	})
}
