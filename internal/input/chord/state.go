package chord

import (
	"github.com/dshills/keychord/internal/input/chain"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
)

// State is the (mode, pending chord) pair a presentation layer displays.
type State struct {
	Mode   mode.Mode
	Buffer key.Sequence
}

// Equal reports whether two states show the same thing.
func (s State) Equal(other State) bool {
	return s.Mode == other.Mode && s.Buffer.Equals(other.Buffer)
}

// String renders the state for a status line, e.g. "NORMAL <Space>".
func (s State) String() string {
	if s.Buffer.IsEmpty() {
		return s.Mode.DisplayName()
	}
	return s.Mode.DisplayName() + " " + s.Buffer.String()
}

// Step computes the state after ev and the action to run, if any.
// It never modifies s or its buffer.
func Step(bindings chain.Trie[Action], s State, ev key.Event) (State, Action) {
	switch ev.Kind {
	case key.KindEscape:
		return State{Mode: mode.Normal}, nil
	case key.KindSymbol:
		// handled below
	default:
		return s, nil
	}

	switch s.Mode {
	case mode.Normal:
		return stepNormal(bindings, s, ev.Symbol)
	case mode.Insert:
		return s, nil
	case mode.Visual:
		return s, nil
	default:
		return s, nil
	}
}

func stepNormal(bindings chain.Trie[Action], s State, sym key.Symbol) (State, Action) {
	buf := s.Buffer.Append(sym)
	r := bindings.Lookup(buf)

	switch r.Outcome {
	case chain.Matched:
		return State{Mode: mode.Normal}, r.Value
	case chain.Pending:
		return State{Mode: mode.Normal, Buffer: buf}, nil
	default:
		if s.Buffer.IsEmpty() {
			return s, nil
		}
		return State{Mode: mode.Normal}, nil
	}
}
