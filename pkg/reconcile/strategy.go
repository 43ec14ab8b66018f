package reconcile

import (
	"fmt"
	"strings"
)

// Strategy decides whether a direct edit to a derived field pins it.
type Strategy interface {
	// Name returns the strategy name
	Name() string

	// Description returns a human-readable description
	Description() string

	// Pin reports whether setting a field to edited, while derivation would
	// produce derived, makes the field Manual.
	Pin(edited, derived string) bool
}

// Strategy names accepted by ParseStrategy.
const (
	StrategyDiffers = "differs"
	StrategyAnyEdit = "any-edit"
)

// baseStrategy provides common strategy functionality
type baseStrategy struct {
	name        string
	description string
}

// Name returns the strategy name
func (s *baseStrategy) Name() string {
	return s.name
}

// Description returns a human-readable description
func (s *baseStrategy) Description() string {
	return s.description
}

type differsStrategy struct {
	baseStrategy
}

// NewDiffersStrategy pins a field only when the edit is non-empty and
// disagrees with the derived value. Editing a field to its derived value
// returns it to Auto.
func NewDiffersStrategy() Strategy {
	return &differsStrategy{
		baseStrategy: baseStrategy{
			name:        StrategyDiffers,
			description: "Pins a field when it is edited to a value that differs from the derived one",
		},
	}
}

func (s *differsStrategy) Pin(edited, derived string) bool {
	return edited != "" && edited != derived
}

type anyEditStrategy struct {
	baseStrategy
}

// NewAnyEditStrategy pins a field on any non-empty direct edit, even one that
// matches the derived value.
func NewAnyEditStrategy() Strategy {
	return &anyEditStrategy{
		baseStrategy: baseStrategy{
			name:        StrategyAnyEdit,
			description: "Pins a field whenever it is edited directly",
		},
	}
}

func (s *anyEditStrategy) Pin(edited, _ string) bool {
	return edited != ""
}

// Strategies returns every built-in strategy, default first.
func Strategies() []Strategy {
	return []Strategy{NewDiffersStrategy(), NewAnyEditStrategy()}
}

// ParseStrategy returns the built-in strategy with the given name. An empty
// name selects the default.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyDiffers:
		return NewDiffersStrategy(), nil
	case StrategyAnyEdit, "any_edit", "anyedit":
		return NewAnyEditStrategy(), nil
	}
	return nil, fmt.Errorf("unknown override strategy %q (want %s or %s)", name, StrategyDiffers, StrategyAnyEdit)
}
