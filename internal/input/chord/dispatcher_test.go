package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/keychord/internal/input/chain"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
)

// counter counts invocations and remembers the last context.
type counter struct {
	calls int
	last  *Context
}

func (c *counter) Invoke(ctx *Context) {
	c.calls++
	c.last = ctx
}

func sym(r rune) key.Event {
	return key.SymbolEvent(key.Symbol(r))
}

func feed(d *Dispatcher, s string) State {
	var st State
	for _, r := range s {
		st = d.OnKey(sym(r))
	}
	return st
}

func TestDispatcherScenarioB(t *testing.T) {
	leader := &counter{}
	d := New(leader)

	st := d.OnKey(sym(' '))
	assert.Equal(t, mode.Normal, st.Mode)
	assert.Equal(t, key.SequenceOf(" "), st.Buffer, "one space is pending")
	assert.Equal(t, 0, leader.calls)

	st = d.OnKey(sym(' '))
	assert.Equal(t, 1, leader.calls, "second space fires the leader")
	assert.True(t, st.Buffer.IsEmpty())
	assert.Equal(t, key.SequenceOf("  "), leader.last.Sequence)
	assert.Equal(t, mode.Normal, leader.last.Mode)
}

func TestDispatcherScenarioC(t *testing.T) {
	act := &counter{}
	d := New(nil)
	require.NoError(t, d.Register(key.SequenceOf("ab"), act))

	st := d.OnKey(sym('a'))
	require.Equal(t, key.SequenceOf("a"), st.Buffer)

	st = d.OnKey(key.EscapeEvent())
	assert.Equal(t, State{Mode: mode.Normal}, st)
	assert.Equal(t, 0, act.calls)

	// The chord starts over after escape.
	feed(d, "b")
	assert.Equal(t, 0, act.calls)
	feed(d, "ab")
	assert.Equal(t, 1, act.calls)
}

func TestDispatcherNoMatchResets(t *testing.T) {
	act := &counter{}
	d := New(nil)
	require.NoError(t, d.Register(key.SequenceOf("abc"), act))

	st := feed(d, "ab")
	require.Equal(t, key.SequenceOf("ab"), st.Buffer)

	st = d.OnKey(sym('x'))
	assert.True(t, st.Buffer.IsEmpty())
	assert.Equal(t, 0, act.calls)

	// The key that broke the chord does not start a new one.
	st = feed(d, "xa")
	assert.Equal(t, key.SequenceOf("a"), st.Buffer)
}

func TestDispatcherUnmappedKeyWhenIdleDoesNotNotify(t *testing.T) {
	d := New(&counter{})
	var changes []State
	d.OnChange(func(s State) { changes = append(changes, s) })

	feed(d, "qqq")
	assert.Empty(t, changes)

	d.OnKey(sym(' '))
	d.OnKey(sym('q'))
	require.Len(t, changes, 2)
	assert.Equal(t, key.SequenceOf(" "), changes[0].Buffer)
	assert.True(t, changes[1].Buffer.IsEmpty())
}

func TestDispatcherInsertAndVisualPassThrough(t *testing.T) {
	for _, m := range []mode.Mode{mode.Insert, mode.Visual} {
		t.Run(m.String(), func(t *testing.T) {
			leader := &counter{}
			d := New(leader, WithInitialMode(m))

			st := feed(d, "    ")
			assert.Equal(t, m, st.Mode)
			assert.True(t, st.Buffer.IsEmpty())
			assert.Equal(t, 0, leader.calls)

			st = d.OnKey(key.EscapeEvent())
			assert.Equal(t, mode.Normal, st.Mode)

			feed(d, "  ")
			assert.Equal(t, 1, leader.calls)
		})
	}
}

func TestDispatcherIgnoredEvents(t *testing.T) {
	leader := &counter{}
	d := New(leader)

	d.OnKey(sym(' '))
	st := d.OnKey(key.IgnoredEvent())
	assert.Equal(t, key.SequenceOf(" "), st.Buffer, "ignored keys do not break a chord")

	d.OnKey(sym(' '))
	assert.Equal(t, 1, leader.calls)
}

func TestDispatcherActionRequestsMode(t *testing.T) {
	d := New(nil)
	require.NoError(t, d.Register(key.SequenceOf("i"), ActionFunc(func(ctx *Context) {
		ctx.SetMode(mode.Insert)
	})))

	var changes []State
	d.OnChange(func(s State) { changes = append(changes, s) })

	st := d.OnKey(sym('i'))
	assert.Equal(t, mode.Insert, st.Mode)
	assert.Equal(t, mode.Insert, d.Mode())
	require.Len(t, changes, 1)
	assert.Equal(t, mode.Insert, changes[0].Mode)

	// In insert mode the same key no longer fires.
	st = d.OnKey(sym('i'))
	assert.Equal(t, mode.Insert, st.Mode)
	assert.Len(t, changes, 1)
}

func TestDispatcherActionWithoutModeRequestKeepsMode(t *testing.T) {
	leader := &counter{}
	d := New(leader)
	st := feed(d, "  ")
	assert.Equal(t, mode.Normal, st.Mode)
	_, requested := leader.last.RequestedMode()
	assert.False(t, requested)
}

func TestDispatcherActionSetsModeDirectly(t *testing.T) {
	d := New(nil)
	require.NoError(t, d.Register(key.SequenceOf("v"), ActionFunc(func(*Context) {
		d.SetMode(mode.Visual)
	})))

	var changes []State
	d.OnChange(func(s State) { changes = append(changes, s) })

	st := d.OnKey(sym('v'))
	assert.Equal(t, State{Mode: mode.Visual}, st)
	assert.Equal(t, mode.Visual, d.Mode())
	require.Len(t, changes, 1)
}

func TestDispatcherContextRequestOverridesDirectSetMode(t *testing.T) {
	d := New(nil)
	require.NoError(t, d.Register(key.SequenceOf("x"), ActionFunc(func(ctx *Context) {
		d.SetMode(mode.Visual)
		ctx.SetMode(mode.Insert)
	})))

	st := d.OnKey(sym('x'))
	assert.Equal(t, mode.Insert, st.Mode)
}

func TestDispatcherRegisterConflict(t *testing.T) {
	d := New(&counter{})
	before := d.Bindings()

	err := d.Register(key.SequenceOf(" "), &counter{})
	require.ErrorIs(t, err, chain.ErrPrefixConflict)
	assert.Equal(t, before.String(), d.Bindings().String())

	err = d.Register(key.SequenceOf("   "), &counter{})
	require.ErrorIs(t, err, chain.ErrPrefixConflict)

	err = d.Register(key.SequenceOf("x"), nil)
	require.ErrorIs(t, err, ErrNilAction)
}

func TestDispatcherUnregister(t *testing.T) {
	leader := &counter{}
	d := New(leader)
	d.Unregister(DefaultLeader)

	feed(d, "  ")
	assert.Equal(t, 0, leader.calls)
	assert.True(t, d.Bindings().IsEmpty())
}

func TestDispatcherSetBindingsClearsBuffer(t *testing.T) {
	old := &counter{}
	d := New(old)
	d.OnKey(sym(' '))

	replacement := &counter{}
	bindings, err := chain.New[Action]().Insert(key.SequenceOf("  "), replacement)
	require.NoError(t, err)

	d.SetBindings(bindings)
	assert.True(t, d.Buffer().IsEmpty())

	feed(d, "  ")
	assert.Equal(t, 0, old.calls)
	assert.Equal(t, 1, replacement.calls)
}

func TestDispatcherWithLeader(t *testing.T) {
	leader := &counter{}
	d := New(leader, WithLeader(key.SequenceOf(",w")))
	assert.Equal(t, key.SequenceOf(",w"), d.Leader())

	feed(d, "  ")
	assert.Equal(t, 0, leader.calls)
	feed(d, ",w")
	assert.Equal(t, 1, leader.calls)
}

func TestDispatcherSetMode(t *testing.T) {
	d := New(&counter{})
	d.OnKey(sym(' '))

	d.SetMode(mode.Visual)
	assert.Equal(t, State{Mode: mode.Visual}, d.State())
}

func TestDispatcherOnChangeUnsubscribe(t *testing.T) {
	d := New(&counter{})
	calls := 0
	unsubscribe := d.OnChange(func(State) { calls++ })

	d.OnKey(sym(' '))
	assert.Equal(t, 1, calls)

	unsubscribe()
	d.OnKey(sym(' '))
	assert.Equal(t, 1, calls)
}

func TestDispatcherStateIsACopy(t *testing.T) {
	d := New(&counter{})
	st := d.OnKey(sym(' '))
	st.Buffer[0] = 'z'

	assert.Equal(t, key.SequenceOf(" "), d.Buffer())
}

func TestDispatcherLogsMatches(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	d := New(&counter{}, WithLogger(zap.New(core)))

	feed(d, " ")
	feed(d, " ")
	feed(d, " x")

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"chord pending", "chord matched", "chord pending", "chord reset"}, messages)
}

func TestStepDoesNotModifyInput(t *testing.T) {
	bindings, err := chain.New[Action]().Insert(key.SequenceOf("abc"), &counter{})
	require.NoError(t, err)

	buf := make(key.Sequence, 1, 8)
	buf[0] = 'a'
	in := State{Mode: mode.Normal, Buffer: buf}

	left, _ := Step(bindings, in, sym('b'))
	right, _ := Step(bindings, in, sym('x'))

	assert.Equal(t, key.SequenceOf("ab"), left.Buffer)
	assert.True(t, right.Buffer.IsEmpty())
	assert.Equal(t, key.SequenceOf("a"), in.Buffer)
}

func TestStepOutcomes(t *testing.T) {
	act := &counter{}
	bindings, err := chain.New[Action]().Insert(key.SequenceOf("ab"), act)
	require.NoError(t, err)

	tests := []struct {
		name       string
		in         State
		ev         key.Event
		want       State
		wantAction bool
	}{
		{"pending", State{}, sym('a'), State{Buffer: key.SequenceOf("a")}, false},
		{"matched", State{Buffer: key.SequenceOf("a")}, sym('b'), State{}, true},
		{"no match mid chord", State{Buffer: key.SequenceOf("a")}, sym('c'), State{}, false},
		{"no match idle", State{}, sym('c'), State{}, false},
		{"escape", State{Mode: mode.Visual}, key.EscapeEvent(), State{}, false},
		{"insert passthrough", State{Mode: mode.Insert}, sym('a'), State{Mode: mode.Insert}, false},
		{"visual passthrough", State{Mode: mode.Visual}, sym('a'), State{Mode: mode.Visual}, false},
		{"ignored", State{Buffer: key.SequenceOf("a")}, key.IgnoredEvent(), State{Buffer: key.SequenceOf("a")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, action := Step(bindings, tt.in, tt.ev)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
			assert.Equal(t, tt.wantAction, action != nil)
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "NORMAL", State{}.String())
	assert.Equal(t, "NORMAL <Space>", State{Buffer: key.SequenceOf(" ")}.String())
	assert.Equal(t, "INSERT", State{Mode: mode.Insert}.String())
}
