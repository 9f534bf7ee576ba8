// Package keymap turns named key bindings into a chord trie.
//
// # Key Concepts
//
// Binding: Maps a key sequence in Vim notation to an action name.
//
// Keymap: A named collection of bindings, usually loaded from a file.
//
// Actions: The registry that resolves action names to chord.Action values.
// Names with a registered prefix (for example "lua:") are compiled by a
// factory instead of looked up.
//
// # File Format
//
// Keymaps are YAML (.yaml, .yml) or JSON (.json):
//
//	name: personal
//	bindings:
//	  - keys: "<Leader>p"
//	    action: panel.toggle
//	    description: Toggle the side panel
//	  - keys: gi
//	    action: "lua: chord.set_mode('insert')"
//
// # Usage
//
//	loader := keymap.NewLoader()
//	loader.AddSearchPath("~/.config/keychord/keymaps")
//	keymaps, err := loader.LoadAll()
//
//	bindings, err := keymap.Build(dispatcher.Bindings(), actions, parser, keymaps...)
//	if err != nil {
//	    // every conflict, unknown action and bad sequence, joined
//	}
//	dispatcher.SetBindings(bindings)
package keymap
