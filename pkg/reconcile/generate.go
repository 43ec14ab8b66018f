//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/productioncity/salutation --repository.default-branch main --repository.path /pkg/reconcile

// Package reconcile decides, for every lifecycle event of a contact, which of
// the derived name parts are regenerated from the full name and which are
// left alone because someone pinned them.
//
// Each derived field is in one of two states. An Auto field always equals
// what derivation produces from the contact's current name, locale and title.
// A Manual field keeps its value across name, locale and title changes until
// it is edited directly or reset.
//
// The policy is pure: it reads a contact and a change set and returns the
// changes to persist. Storage, transactions and logging belong to the caller.
package reconcile
