package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/keychord/internal/input/chord"
)

// ErrUnknownAction is returned when an action name cannot be resolved.
var ErrUnknownAction = errors.New("unknown action")

// ActionFactory builds actions from the text after a registered prefix.
type ActionFactory interface {
	Compile(source string) (chord.Action, error)
}

// Actions resolves action names to actions.
type Actions struct {
	actions   map[string]chord.Action
	factories map[string]ActionFactory
}

// NewActions creates an empty action registry.
func NewActions() *Actions {
	return &Actions{
		actions:   make(map[string]chord.Action),
		factories: make(map[string]ActionFactory),
	}
}

// Register adds a named action, replacing any action with the same name.
func (a *Actions) Register(name string, action chord.Action) {
	a.actions[name] = action
}

// RegisterFunc adds a named action function.
func (a *Actions) RegisterFunc(name string, fn func(*chord.Context)) {
	a.Register(name, chord.ActionFunc(fn))
}

// RegisterFactory routes names of the form "<prefix>:<source>" to f.
func (a *Actions) RegisterFactory(prefix string, f ActionFactory) {
	a.factories[prefix] = f
}

// Resolve returns the action for name.
func (a *Actions) Resolve(name string) (chord.Action, error) {
	if action, ok := a.actions[name]; ok {
		return action, nil
	}

	if prefix, source, ok := strings.Cut(name, ":"); ok {
		if f, ok := a.factories[strings.TrimSpace(prefix)]; ok {
			action, err := f.Compile(strings.TrimSpace(source))
			if err != nil {
				return nil, fmt.Errorf("compiling %s action: %w", prefix, err)
			}
			return action, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Names returns the registered action names in sorted order.
func (a *Actions) Names() []string {
	names := make([]string, 0, len(a.actions))
	for name := range a.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
