package chord

import (
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
)

// Action is the behavior bound to a chord.
type Action interface {
	// Invoke runs the action. Anything the action affects is reached
	// through ctx or through handles given to the action when it was built.
	Invoke(ctx *Context)
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx *Context)

// Invoke calls f(ctx).
func (f ActionFunc) Invoke(ctx *Context) {
	f(ctx)
}

// Context is passed to an action when its chord completes.
type Context struct {
	// Sequence is the chord that fired.
	Sequence key.Sequence

	// Mode is the mode the chord was typed in.
	Mode mode.Mode

	requested *mode.Mode
}

// SetMode asks the dispatcher to switch to m once the action returns.
// The last call wins.
func (c *Context) SetMode(m mode.Mode) {
	c.requested = &m
}

// RequestedMode returns the mode set with SetMode, if any.
func (c *Context) RequestedMode() (mode.Mode, bool) {
	if c.requested == nil {
		return mode.Normal, false
	}
	return *c.requested, true
}
