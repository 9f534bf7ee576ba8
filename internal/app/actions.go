package app

import (
	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/mode"
)

// togglePanel is the default action, bound to the leader chord.
func (a *Application) togglePanel(*chord.Context) {
	a.panel.Toggle(PanelFlag)
}

// registerBuiltins adds the built-in actions.
func (a *Application) registerBuiltins(actions *keymap.Actions) {
	actions.RegisterFunc(keymap.ActionPanelToggle, a.togglePanel)
	actions.RegisterFunc(keymap.ActionModeNormal, func(ctx *chord.Context) {
		ctx.SetMode(mode.Normal)
	})
	actions.RegisterFunc(keymap.ActionModeInsert, func(ctx *chord.Context) {
		ctx.SetMode(mode.Insert)
	})
	actions.RegisterFunc(keymap.ActionModeVisual, func(ctx *chord.Context) {
		ctx.SetMode(mode.Visual)
	})
	actions.RegisterFunc(keymap.ActionQuit, func(*chord.Context) {
		a.quit = true
	})
}
