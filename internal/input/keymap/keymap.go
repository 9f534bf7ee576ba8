package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keychord/internal/input/key"
)

// Keymap holds a named set of bindings.
type Keymap struct {
	// Name is the keymap identifier.
	Name string `yaml:"name" json:"name"`

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "/home/me/.config/keychord/keymaps/x.yaml"
	Source string `yaml:"source,omitempty" json:"source,omitempty"`

	// Bindings are the chord-to-action mappings.
	Bindings []Binding `yaml:"bindings" json:"bindings"`
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, action))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks every binding the way Build does before resolving
// actions: keys and action present, keys parsed with p. A nil p uses
// key.NewParser. All problems are reported together.
func (k *Keymap) Validate(p *key.Parser) error {
	if p == nil {
		p = key.NewParser()
	}
	var errs []error
	for i, b := range k.Bindings {
		if _, err := b.sequence(p); err != nil {
			errs = append(errs, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err))
		}
	}
	return errors.Join(errs...)
}
