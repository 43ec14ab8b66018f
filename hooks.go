package salutation

import (
	"sync"

	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/reconcile"
)

// Hook function types for reconciliation events
type (
	// DerivedHook is called after an event changed a contact's derived
	// fields or their states.
	DerivedHook func(c contacts.Contact, decisions []reconcile.Decision)

	// OverrideHook is called after a direct edit pinned a field.
	OverrideHook func(c contacts.Contact, field reconcile.Field)
)

// hooks manages event callbacks
type hooks struct {
	mu         sync.RWMutex
	onDerived  []DerivedHook
	onOverride []OverrideHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnDerived registers a callback for derived-field changes
func (h *hooks) OnDerived(fn DerivedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDerived = append(h.onDerived, fn)
}

// OnOverride registers a callback for newly pinned fields
func (h *hooks) OnOverride(fn OverrideHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOverride = append(h.onOverride, fn)
}

// trigger runs the hooks for a persisted result
func (h *hooks) trigger(c contacts.Contact, res reconcile.Result) {
	if len(res.Decisions) == 0 {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onDerived {
		hook(c, res.Decisions)
	}
	for _, field := range res.Overrides() {
		for _, hook := range h.onOverride {
			hook(c, field)
		}
	}
}
