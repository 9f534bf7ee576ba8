package lua

import (
	"errors"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewState(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if state.IsClosed() {
		t.Error("NewState() returned closed state")
	}
}

func TestStateDoString(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	num, ok := state.GetGlobal("x").(glua.LNumber)
	if !ok {
		t.Fatalf("x is not a number, got %T", state.GetGlobal("x"))
	}
	if float64(num) != 2 {
		t.Errorf("x = %v, want 2", num)
	}
}

func TestStateDoStringErrors(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(`invalid lua code !!!`); err == nil {
		t.Error("DoString() expected syntax error")
	}
	if err := state.DoString(`error("boom")`); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("DoString() error = %v, want runtime error", err)
	}

	// The state is still usable.
	if err := state.DoString(`y = 3`); err != nil {
		t.Errorf("DoString() after error = %v", err)
	}
}

func TestStateTimeout(t *testing.T) {
	state, err := NewState(WithExecutionTimeout(50 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	err = state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	if err := state.DoString(`z = 1`); err != nil {
		t.Errorf("DoString() after timeout = %v", err)
	}
}

func TestStateCompileAndCall(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	fn, err := state.Compile(`n = (n or 0) + 1`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := state.Call(fn); err != nil {
			t.Fatalf("Call() error = %v", err)
		}
	}
	if got := state.GetGlobal("n"); got != glua.LNumber(3) {
		t.Errorf("n = %v, want 3", got)
	}

	if _, err := state.Compile(`if then`); err == nil {
		t.Error("Compile() expected syntax error")
	}
}

func TestStateClosed(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if _, err := state.Compile(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Compile() error = %v, want ErrStateClosed", err)
	}
	if got := state.GetGlobal("x"); got != glua.LNil {
		t.Errorf("GetGlobal() = %v, want nil", got)
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		if got := state.GetGlobal(name); got != glua.LNil {
			t.Errorf("%s = %v, want nil", name, got)
		}
	}
}

func TestSandboxRequire(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(`local s = require("string"); up = s.upper("ab")`); err != nil {
		t.Fatalf("require(string) error = %v", err)
	}
	if got := state.GetGlobal("up"); got != glua.LString("AB") {
		t.Errorf("up = %v, want AB", got)
	}

	err = state.DoString(`require("os")`)
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Errorf("require(os) error = %v, want not available", err)
	}
}

func TestSandboxPrintLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	state, err := NewState(WithStateLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	defer state.Close()

	if err := state.DoString(`print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	entries := logs.FilterMessage("lua print").All()
	if len(entries) != 1 {
		t.Fatalf("got %d print entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["msg"]; got != "hello\t42" {
		t.Errorf("msg = %q, want %q", got, "hello\t42")
	}
}
