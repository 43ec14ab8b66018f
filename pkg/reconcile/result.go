package reconcile

import (
	"github.com/productioncity/salutation/pkg/contacts"
	"github.com/productioncity/salutation/pkg/names"
)

// Field is a derived name part.
type Field = contacts.Field

// Event identifies the lifecycle event a result was computed for.
type Event string

// Events.
const (
	EventCreate    Event = "create"
	EventUpdate    Event = "update"
	EventFillBlank Event = "fill_blank"
	EventBackfill  Event = "backfill"
	EventReset     Event = "reset"
)

// String returns the string representation of an event.
func (e Event) String() string {
	return string(e)
}

// State is the override state of one derived field.
type State string

// States.
const (
	Auto   State = "auto"
	Manual State = "manual"
)

// StateOf maps a manual flag to a State.
func StateOf(manual bool) State {
	if manual {
		return Manual
	}
	return Auto
}

// Reasons recorded on decisions.
const (
	ReasonDerived     = "derived from name"
	ReasonKeptManual  = "kept manual value"
	ReasonEditDiffers = "edited value differs from derived"
	ReasonEditMatches = "edited value matches derived"
	ReasonFlagSet     = "marked manual"
	ReasonFlagCleared = "marked automatic"
	ReasonFilledBlank = "filled blank field"
	ReasonReset       = "reset"
)

// Decision records what happened to one field during an event. Only fields
// whose value or state changed get a decision.
type Decision struct {
	Field  Field  `json:"field" yaml:"field"`
	From   State  `json:"from" yaml:"from"`
	To     State  `json:"to" yaml:"to"`
	Old    string `json:"old" yaml:"old"`
	New    string `json:"new" yaml:"new"`
	Reason string `json:"reason" yaml:"reason"`
}

// Pinned reports whether the decision moved the field from Auto to Manual.
func (d Decision) Pinned() bool {
	return d.From == Auto && d.To == Manual
}

// Result is the outcome of one event.
type Result struct {
	Event Event `json:"event" yaml:"event"`

	// Changes is what the caller persists. For create and update it includes
	// the incoming changes.
	Changes contacts.Changes `json:"changes" yaml:"changes"`

	// Decisions traces each field that changed value or state.
	Decisions []Decision `json:"decisions,omitempty" yaml:"decisions,omitempty"`

	// Parts is the derivation the event used. It is zero for non-person
	// contacts.
	Parts names.Parts `json:"parts" yaml:"parts"`
}

// Changed reports whether there is anything to persist.
func (r Result) Changed() bool {
	return !r.Changes.Empty()
}

// Overrides lists the fields this event pinned.
func (r Result) Overrides() []Field {
	var out []Field
	for _, d := range r.Decisions {
		if d.Pinned() {
			out = append(out, d.Field)
		}
	}
	return out
}

func (r *Result) record(f Field, cur contacts.Contact, value string, manual bool, reason string) {
	from, to := StateOf(cur.Manual(f)), StateOf(manual)
	if from == to && cur.Value(f) == value {
		return
	}
	r.Decisions = append(r.Decisions, Decision{
		Field:  f,
		From:   from,
		To:     to,
		Old:    cur.Value(f),
		New:    value,
		Reason: reason,
	})
}
