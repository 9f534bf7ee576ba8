package keymap

// Built-in action names.
const (
	ActionPanelToggle = "panel.toggle"
	ActionModeNormal  = "mode.normal"
	ActionModeInsert  = "mode.insert"
	ActionModeVisual  = "mode.visual"
	ActionQuit        = "app.quit"
)

// DefaultKeymap returns the built-in bindings. The leader chord itself is
// bound by the dispatcher, not here.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{Keys: "i", Action: ActionModeInsert, Description: "Enter insert mode", Category: "Mode"},
			{Keys: "v", Action: ActionModeVisual, Description: "Enter visual mode", Category: "Mode"},
			{Keys: "<Leader>p", Action: ActionPanelToggle, Description: "Toggle the panel", Category: "Panel"},
			{Keys: "ZZ", Action: ActionQuit, Description: "Quit", Category: "Application"},
			{Keys: "ZQ", Action: ActionQuit, Description: "Quit", Category: "Application"},
		},
	}
}
