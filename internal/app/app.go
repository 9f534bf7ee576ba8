package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/chain"
	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/termkey"
	"github.com/dshills/keychord/internal/plugin/lua"
)

// Options configures the application.
type Options struct {
	// Logger receives application logs. Nil discards them.
	Logger *zap.Logger

	// Screen is the terminal screen. Nil creates one when Run starts.
	Screen tcell.Screen
}

// Run lifecycle states.
const (
	stateIdle int32 = iota
	stateRunning
	stateStopped
)

// Application wires configuration, keymaps and the chord dispatcher to a
// terminal screen.
//
// Everything except Run's input poller happens on the goroutine that
// calls Run: key events, keymap reloads and rendering are processed one at
// a time in arrival order.
type Application struct {
	cfg    config.Config
	logger *zap.Logger

	panel   *Panel
	lua     *lua.Runtime
	actions *keymap.Actions
	loader  *keymap.Loader
	parser  *key.Parser

	// base holds only the leader binding; keymaps are built on top of it.
	base       chain.Trie[chord.Action]
	dispatcher *chord.Dispatcher

	screen tcell.Screen

	// loadErr is the result of the last keymap load.
	loadErr     error
	quit        bool
	stopWatcher func()

	state    atomic.Int32
	ready    chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates an application and loads its keymaps. Keymap problems do
// not fail New: every binding that loads is used and the problems are
// available from LoadError.
func New(cfg config.Config, opts Options) (*Application, error) {
	a := &Application{
		cfg:    cfg,
		logger: opts.Logger,
		screen: opts.Screen,
		ready:  make(chan struct{}),
		stop:   make(chan struct{}),
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}

	if err := a.bootstrap(); err != nil {
		return nil, err
	}
	return a, nil
}

// bootstrap initializes all components in dependency order.
func (a *Application) bootstrap() error {
	// 1. Config
	if err := a.cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	parser, err := a.cfg.Parser()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	a.parser = parser
	leader, err := a.cfg.LeaderChord()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	initial, err := a.cfg.Mode()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 2. Lua runtime, flipping panel flags
	a.panel = NewPanel()
	a.lua, err = lua.NewRuntime(a.panel, a.logger.Named("lua"))
	if err != nil {
		return &InitError{Component: "lua", Err: err}
	}

	// 3. Actions
	a.actions = keymap.NewActions()
	a.registerBuiltins(a.actions)
	a.actions.RegisterFactory(lua.FactoryPrefix, a.lua)

	// 4. Keymap loader
	a.loader = keymap.NewLoader()
	a.loader.SetLogger(a.logger.Named("keymap"))
	for _, path := range a.cfg.Keymaps {
		a.loader.AddSearchPath(path)
	}

	// 5. Dispatcher
	a.dispatcher = chord.New(chord.ActionFunc(a.togglePanel),
		chord.WithLeader(leader),
		chord.WithInitialMode(initial),
		chord.WithLogger(a.logger.Named("chord")),
	)
	a.base = a.dispatcher.Bindings()
	a.dispatcher.OnChange(func(s chord.State) {
		a.logger.Debug("state changed", zap.Stringer("state", s))
	})

	// 6. Bindings
	if err := a.Reload(); err != nil {
		a.logger.Warn("keymaps loaded with errors", zap.Error(err))
	}
	return nil
}

// LoadBindings loads the default keymap and every configured keymap file
// and builds them on top of the leader binding. The trie holds every
// binding that loaded; the error joins every problem.
func (a *Application) LoadBindings() (chain.Trie[chord.Action], error) {
	keymaps := []*keymap.Keymap{keymap.DefaultKeymap()}
	loaded, loadErr := a.loader.LoadAll()
	keymaps = append(keymaps, loaded...)

	bindings, buildErr := keymap.Build(a.base, a.actions, a.parser, keymaps...)
	return bindings, errors.Join(loadErr, buildErr)
}

// Reload rebuilds the bindings from the keymap files and installs them.
// Any pending chord is dropped.
func (a *Application) Reload() error {
	bindings, err := a.LoadBindings()
	a.dispatcher.SetBindings(bindings)
	a.loadErr = err
	a.logger.Info("keymaps loaded", zap.Int("bindings", bindings.Len()), zap.Bool("errors", err != nil))
	return err
}

// LoadError returns the problems found by the last keymap load.
func (a *Application) LoadError() error {
	return a.loadErr
}

// Dispatcher returns the chord dispatcher.
func (a *Application) Dispatcher() *chord.Dispatcher {
	return a.dispatcher
}

// Panel returns the panel flags.
func (a *Application) Panel() *Panel {
	return a.panel
}

// Actions returns the action registry.
func (a *Application) Actions() *keymap.Actions {
	return a.actions
}

// HandleKey feeds one key event to the dispatcher.
// Returns ErrQuit if the event ran the quit action. The quit request is
// reported once.
func (a *Application) HandleKey(ev key.Event) error {
	a.dispatcher.OnKey(ev)
	if a.quit {
		a.quit = false
		return ErrQuit
	}
	return nil
}

// HandleEvent processes a terminal event.
func (a *Application) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.HandleKey(termkey.Convert(ev))
	case *tcell.EventResize:
		if a.screen != nil {
			a.screen.Sync()
		}
	}
	return nil
}

// Ready is closed once Run has initialized the screen.
func (a *Application) Ready() <-chan struct{} {
	return a.ready
}

// IsRunning returns true if the application is running.
func (a *Application) IsRunning() bool {
	return a.state.Load() == stateRunning
}

// Run starts the main loop. It blocks until the quit action runs, then
// returns ErrQuit, or until Shutdown is called, then returns nil.
//
// An application runs once. Run returns ErrAlreadyRunning while another
// call is active and ErrStopped after a call has returned.
func (a *Application) Run() error {
	if !a.state.CompareAndSwap(stateIdle, stateRunning) {
		if a.state.Load() == stateRunning {
			return ErrAlreadyRunning
		}
		return ErrStopped
	}
	defer a.state.Store(stateStopped)

	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		a.screen = screen
	}
	if err := a.screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer a.screen.Fini()

	done := make(chan struct{})
	defer close(done)

	reload := a.startWatcher()
	defer a.closeWatcher()

	events := make(chan tcell.Event)
	go a.pollEvents(events, done)

	close(a.ready)
	a.render()

	for {
		select {
		case ev := <-events:
			if err := a.HandleEvent(ev); err != nil {
				return err
			}
		case <-reload:
			if err := a.Reload(); err != nil {
				a.logger.Warn("keymap reload", zap.Error(err))
			}
		case <-a.stop:
			return nil
		}
		a.render()
	}
}

// Shutdown makes Run return. Safe to call from any goroutine, more than
// once.
func (a *Application) Shutdown() {
	a.stopOnce.Do(func() { close(a.stop) })
}

// pollEvents forwards screen events until the screen is finalized.
func (a *Application) pollEvents(events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// startWatcher watches the keymap files when enabled. The returned channel
// is nil, and so never ready, when watching is off or fails.
func (a *Application) startWatcher() <-chan struct{} {
	if !a.cfg.Watch || len(a.cfg.Keymaps) == 0 {
		return nil
	}

	w, err := keymap.NewWatcher(a.cfg.Keymaps, a.cfg.Debounce, a.logger.Named("watcher"))
	if err != nil {
		a.logger.Warn("keymap watcher disabled", zap.Error(err))
		return nil
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		a.logger.Warn("keymap watcher disabled", zap.Error(err))
		return nil
	}

	a.stopWatcher = func() { _ = w.Stop() }
	return changes
}

func (a *Application) closeWatcher() {
	if a.stopWatcher != nil {
		a.stopWatcher()
		a.stopWatcher = nil
	}
}

// Close releases the application's resources.
func (a *Application) Close() error {
	a.closeWatcher()
	if err := a.lua.Close(); err != nil {
		return fmt.Errorf("closing lua runtime: %w", err)
	}
	return nil
}

// describe returns the display name of a bound action.
func (a *Application) describe(seq key.Sequence, action chord.Action) string {
	if b, ok := action.(*keymap.Bound); ok {
		if b.Description != "" {
			return b.Name + " (" + b.Description + ")"
		}
		return b.Name
	}
	if seq.Equals(a.dispatcher.Leader()) {
		return keymap.ActionPanelToggle
	}
	if s, ok := action.(fmt.Stringer); ok {
		return s.String()
	}
	return "?"
}

// Listing returns one "keys  action" line per binding, in ascending order.
func (a *Application) Listing() []string {
	entries := a.dispatcher.Bindings().Entries()
	width := 0
	for _, e := range entries {
		width = max(width, len([]rune(e.Sequence.String())))
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		keys := e.Sequence.String()
		pad := strings.Repeat(" ", width-len([]rune(keys)))
		lines = append(lines, keys+pad+"  "+a.describe(e.Sequence, e.Value))
	}
	return lines
}
