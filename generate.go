//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/productioncity/salutation --repository.default-branch main --repository.path /

// Package salutation keeps a contact's given name, family name and salutation
// in sync with its full name while letting people pin any of the three.
//
// The service wraps a contacts.Store with the reconciliation policy from
// pkg/reconcile. Every write goes through the store's per-record atomic unit,
// so a contact's three values and their manual flags always change together.
//
// Example usage:
//
//	svc, err := salutation.New(memory.New(), salutation.WithDefaultLocale("en_US"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c, err := svc.Create(ctx, contacts.Changes{}.
//	    WithCategory(contacts.Person).
//	    WithName("Jane Smith").
//	    WithTitle("Dr."))
//	// c.GivenName == "Jane", c.FamilyName == "Smith", c.Salutation == "Dr. Smith"
//
//	// Pin the given name, then rename: the pin survives.
//	c, _ = svc.Update(ctx, c.ID, contacts.Changes{}.WithValue(contacts.FieldGiven, "Janie"))
//	c, _ = svc.Update(ctx, c.ID, contacts.Changes{}.WithName("Jane Doe"))
//	// c.GivenName == "Janie", c.FamilyName == "Doe"
package salutation
