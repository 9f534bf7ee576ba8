package keymap

import (
	"errors"

	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/input/key"
)

// Binding represents a single chord-to-action mapping.
type Binding struct {
	// Keys is the chord in Vim notation.
	// Examples: "gg", "<Space><Space>", "<Leader>w"
	Keys string `yaml:"keys" json:"keys"`

	// Action is the name of the action to run.
	// Examples: "panel.toggle", "mode.insert", "lua: chord.log('hi')"
	Action string `yaml:"action" json:"action"`

	// Description provides documentation for the binding.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Category groups bindings for display purposes.
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// sequence checks that b names keys and an action and parses its keys
// with p.
func (b Binding) sequence(p *key.Parser) (key.Sequence, error) {
	if b.Keys == "" {
		return nil, errors.New("empty keys")
	}
	if b.Action == "" {
		return nil, errors.New("empty action")
	}
	seq, err := p.Parse(b.Keys)
	if err != nil {
		return nil, err
	}
	if seq.IsEmpty() {
		return nil, errors.New("empty key sequence")
	}
	return seq, nil
}

// Bound is the value stored in the trie for a binding: the resolved action
// plus the names needed to describe it.
type Bound struct {
	chord.Action

	Name        string
	Description string
	Keymap      string
}

// String returns the action name.
func (b *Bound) String() string {
	return b.Name
}
