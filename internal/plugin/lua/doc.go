// Package lua runs chord actions written in Lua.
//
// Actions are short chunks compiled once when a keymap is built and run
// each time their chord completes:
//
//	bindings:
//	  - keys: "<Leader>h"
//	    action: "lua: chord.toggle('help'); chord.log('help toggled')"
//
// Chunks see a sandboxed state (base, table, string and math only) and a
// chord table:
//
//	chord.mode()          current mode name
//	chord.set_mode(name)  switch mode once the action returns
//	chord.keys()          the chord that fired, in notation form
//	chord.log(msg)        write msg to the application log
//	chord.toggle(name)    flip a named flag, returning its new value
//
// A failing chunk is logged and otherwise ignored.
//
// gopher-lua's LState is not goroutine-safe. A Runtime and the actions it
// compiles must be used from one goroutine, normally the one running the
// dispatcher.
package lua
