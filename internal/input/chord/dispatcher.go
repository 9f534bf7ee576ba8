package chord

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/keychord/internal/input/chain"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
)

// ErrNilAction is returned when registering a nil action.
var ErrNilAction = errors.New("nil action")

// DefaultLeader is the chord the default action is bound to: two spaces.
var DefaultLeader = key.Sequence{key.SymbolSpace, key.SymbolSpace}

// ChangeCallback is called after the dispatcher state changes.
type ChangeCallback func(State)

// Dispatcher resolves key events against chord bindings.
//
// Actions should request mode changes with Context.SetMode. A direct
// SetMode call made while an action runs is kept unless the action also
// made a Context request, which wins.
type Dispatcher struct {
	bindings chain.Trie[Action]
	state    State
	leader   key.Sequence

	// callbacks are notified on state changes. Unsubscribed entries are nil.
	callbacks []ChangeCallback

	logger *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLeader sets the chord the default action is bound to.
func WithLeader(seq key.Sequence) Option {
	return func(d *Dispatcher) {
		d.leader = seq.Clone()
	}
}

// WithInitialMode sets the starting mode.
func WithInitialMode(m mode.Mode) Option {
	return func(d *Dispatcher) {
		d.state.Mode = m
	}
}

// New creates a dispatcher with defaultAction bound to the leader chord
// (DefaultLeader unless WithLeader is given). A nil defaultAction binds
// nothing.
func New(defaultAction Action, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		leader: DefaultLeader.Clone(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if defaultAction != nil {
		// Inserting into an empty trie cannot conflict.
		d.bindings, _ = d.bindings.Insert(d.leader, defaultAction)
	}
	return d
}

// Leader returns the chord the default action was bound to.
func (d *Dispatcher) Leader() key.Sequence {
	return d.leader.Clone()
}

// State returns the current mode and pending chord.
func (d *Dispatcher) State() State {
	return State{Mode: d.state.Mode, Buffer: d.state.Buffer.Clone()}
}

// Mode returns the current mode.
func (d *Dispatcher) Mode() mode.Mode {
	return d.state.Mode
}

// Buffer returns the pending chord.
func (d *Dispatcher) Buffer() key.Sequence {
	return d.state.Buffer.Clone()
}

// Bindings returns the current bindings snapshot.
func (d *Dispatcher) Bindings() chain.Trie[Action] {
	return d.bindings
}

// Register binds seq to action. The bindings are replaced by a new
// snapshot; on a prefix conflict they are left as they were and the
// *chain.PrefixConflictError is returned.
func (d *Dispatcher) Register(seq key.Sequence, action Action) error {
	if action == nil {
		return fmt.Errorf("registering %q: %w", seq.String(), ErrNilAction)
	}
	bindings, err := d.bindings.Insert(seq, action)
	if err != nil {
		return err
	}
	d.bindings = bindings
	return nil
}

// Unregister removes the binding for seq, if any.
func (d *Dispatcher) Unregister(seq key.Sequence) {
	d.bindings = d.bindings.Remove(seq)
}

// SetBindings replaces all bindings with a new snapshot and drops any
// pending chord.
func (d *Dispatcher) SetBindings(bindings chain.Trie[Action]) {
	d.bindings = bindings
	d.transition(State{Mode: d.state.Mode})
	d.logger.Debug("bindings replaced", zap.Int("count", bindings.Len()))
}

// SetMode switches mode and drops any pending chord.
func (d *Dispatcher) SetMode(m mode.Mode) {
	d.transition(State{Mode: m})
}

// OnKey handles one key event and returns the resulting state.
func (d *Dispatcher) OnKey(ev key.Event) State {
	prev := d.state
	next, action := Step(d.bindings, prev, ev)

	if action == nil {
		if next.Buffer.Len() > prev.Buffer.Len() {
			d.logger.Debug("chord pending", zap.Stringer("keys", next.Buffer))
		} else if !prev.Buffer.IsEmpty() && next.Buffer.IsEmpty() {
			d.logger.Debug("chord reset", zap.Stringer("keys", prev.Buffer), zap.Stringer("event", ev))
		}
		d.transition(next)
		return d.State()
	}

	ctx := &Context{
		Sequence: prev.Buffer.Append(ev.Symbol),
		Mode:     prev.Mode,
	}
	d.logger.Debug("chord matched", zap.Stringer("keys", ctx.Sequence))

	action.Invoke(ctx)

	// SetMode during Invoke has already transitioned.
	if d.state.Mode != prev.Mode {
		next.Mode = d.state.Mode
	}
	if m, ok := ctx.RequestedMode(); ok {
		next = State{Mode: m}
	}
	d.transition(next)
	return d.State()
}

// OnChange registers a callback for state changes.
// Returns a function to unregister the callback.
func (d *Dispatcher) OnChange(callback ChangeCallback) func() {
	d.callbacks = append(d.callbacks, callback)
	index := len(d.callbacks) - 1

	return func() {
		// Remove callback by setting to nil (preserves indices)
		if index < len(d.callbacks) {
			d.callbacks[index] = nil
		}
	}
}

// transition installs next and notifies callbacks if anything changed.
func (d *Dispatcher) transition(next State) {
	prev := d.state
	d.state = next
	if prev.Equal(next) {
		return
	}
	if prev.Mode != next.Mode {
		d.logger.Debug("mode changed", zap.Stringer("from", prev.Mode), zap.Stringer("to", next.Mode))
	}
	for _, cb := range d.callbacks {
		if cb != nil {
			cb(d.State())
		}
	}
}
