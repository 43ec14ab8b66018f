// Package fields publishes the derived name parts to templating and
// campaign tooling as (name, label) pairs.
package fields

import (
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/productioncity/salutation/pkg/contacts"
)

// Field is a field a host can offer in a picker.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
}

// NameParts returns the three contributed fields.
func NameParts() []Field {
	out := make([]Field, 0, 3)
	for _, f := range contacts.Fields() {
		out = append(out, Field{Name: f.String(), Label: f.Label()})
	}
	return out
}

// Registry is an ordered set of fields keyed by name. The first label
// registered for a name wins.
type Registry struct {
	mu     sync.RWMutex
	fields []Field
	names  map[string]struct{}
}

// NewRegistry creates a registry holding base.
func NewRegistry(base ...Field) *Registry {
	r := &Registry{names: make(map[string]struct{})}
	r.Add(base...)
	return r
}

// Add appends fields not already present.
func (r *Registry) Add(fs ...Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range fs {
		if _, ok := r.names[f.Name]; ok || f.Name == "" {
			continue
		}
		r.names[f.Name] = struct{}{}
		r.fields = append(r.fields, f)
	}
}

// Has reports whether a field with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok
}

// List returns the registered fields in registration order.
func (r *Registry) List() []Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fields)
}

// MergeFields adds the name parts to the templating registry base and
// returns it. A nil base gets a fresh registry.
func MergeFields(base *Registry) *Registry {
	if base == nil {
		base = NewRegistry()
	}
	base.Add(NameParts()...)
	return base
}

// CampaignModel is the host model recipient fields are contributed to.
const CampaignModel = "marketing.activity"

const candidatePrefix = "marketing."

// Host reports which models the host system provides.
type Host interface {
	HasModel(name string) bool
	Models() []string
}

// StaticHost is a Host backed by a fixed list of model names.
type StaticHost []string

// HasModel reports whether name is in the list.
func (h StaticHost) HasModel(name string) bool {
	for _, m := range h {
		if m == name {
			return true
		}
	}
	return false
}

// Models returns the model names, sorted.
func (h StaticHost) Models() []string {
	out := append([]string(nil), h...)
	sort.Strings(out)
	return out
}

// RegisterRecipientFields adds the name parts to the campaign recipient
// registry when the host provides CampaignModel. Otherwise it logs a warning
// listing the host's other marketing models and returns false. It never fails.
func RegisterRecipientFields(host Host, registry *Registry, logger *zerolog.Logger) bool {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if host == nil || !host.HasModel(CampaignModel) {
		logger.Warn().
			Str("model", CampaignModel).
			Strs("candidates", candidates(host)).
			Msg("Campaign model not found, recipient fields not registered")
		return false
	}

	registry.Add(NameParts()...)
	logger.Debug().
		Str("model", CampaignModel).
		Int("fields", len(NameParts())).
		Msg("Registered recipient fields")
	return true
}

func candidates(host Host) []string {
	out := []string{}
	if host == nil {
		return out
	}
	for _, m := range host.Models() {
		if strings.HasPrefix(m, candidatePrefix) {
			out = append(out, m)
		}
	}
	return out
}
