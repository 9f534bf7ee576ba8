package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/input/mode"
)

// FactoryPrefix is the action name prefix routed to a Runtime.
const FactoryPrefix = "lua"

// Flags is the named boolean state chord.toggle flips.
type Flags interface {
	// Toggle flips the named flag and returns its new value.
	Toggle(name string) bool
}

// Runtime compiles and runs Lua chord actions on one sandboxed state.
type Runtime struct {
	state  *State
	flags  Flags
	logger *zap.Logger

	// current is the context of the action being run, nil between runs.
	current *chord.Context
}

// NewRuntime creates a runtime. flags may be nil, in which case
// chord.toggle raises an error.
func NewRuntime(flags Flags, logger *zap.Logger, opts ...StateOption) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]StateOption{WithStateLogger(logger)}, opts...)

	state, err := NewState(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating lua state: %w", err)
	}

	r := &Runtime{
		state:  state,
		flags:  flags,
		logger: logger,
	}
	state.RegisterModule("chord", map[string]lua.LGFunction{
		"mode":     r.luaMode,
		"set_mode": r.luaSetMode,
		"keys":     r.luaKeys,
		"log":      r.luaLog,
		"toggle":   r.luaToggle,
	})
	return r, nil
}

// State returns the underlying state.
func (r *Runtime) State() *State {
	return r.state
}

// Compile builds an action from a Lua chunk. Syntax errors are reported
// here, when the keymap is built, rather than when the chord fires.
func (r *Runtime) Compile(source string) (chord.Action, error) {
	fn, err := r.state.Compile(source)
	if err != nil {
		return nil, err
	}
	return &Action{runtime: r, fn: fn, source: source}, nil
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	return r.state.Close()
}

func (r *Runtime) run(a *Action, ctx *chord.Context) error {
	r.current = ctx
	defer func() { r.current = nil }()
	return r.state.Call(a.fn)
}

// chord.mode() -> string
func (r *Runtime) luaMode(L *lua.LState) int {
	m := mode.Normal
	if r.current != nil {
		m = r.current.Mode
	}
	L.Push(lua.LString(m.String()))
	return 1
}

// chord.set_mode(name)
func (r *Runtime) luaSetMode(L *lua.LState) int {
	name := L.CheckString(1)
	m, err := mode.Parse(name)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if r.current == nil {
		L.RaiseError("set_mode: no chord is running")
		return 0
	}
	r.current.SetMode(m)
	return 0
}

// chord.keys() -> string
func (r *Runtime) luaKeys(L *lua.LState) int {
	if r.current == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(r.current.Sequence.String()))
	return 1
}

// chord.log(msg)
func (r *Runtime) luaLog(L *lua.LState) int {
	msg := L.ToStringMeta(L.Get(1)).String()
	fields := []zap.Field{zap.String("msg", msg)}
	if r.current != nil {
		fields = append(fields, zap.Stringer("keys", r.current.Sequence))
	}
	r.logger.Info("lua log", fields...)
	return 0
}

// chord.toggle(name) -> bool
func (r *Runtime) luaToggle(L *lua.LState) int {
	name := L.CheckString(1)
	if r.flags == nil {
		L.RaiseError("toggle %q: %v", name, ErrNoFlags)
		return 0
	}
	L.Push(lua.LBool(r.flags.Toggle(name)))
	return 1
}

// Action is a compiled Lua chunk bound to a chord.
type Action struct {
	runtime *Runtime
	fn      *lua.LFunction
	source  string
}

// Invoke runs the chunk. Errors are logged; they never reach the
// dispatcher.
func (a *Action) Invoke(ctx *chord.Context) {
	if err := a.runtime.run(a, ctx); err != nil {
		a.runtime.logger.Warn("lua action failed",
			zap.String("source", a.source),
			zap.Stringer("keys", ctx.Sequence),
			zap.Error(err))
	}
}

// Source returns the chunk the action was compiled from.
func (a *Action) Source() string {
	return a.source
}

// String returns the action name as written in a keymap.
func (a *Action) String() string {
	return FactoryPrefix + ": " + a.source
}
