package app

import (
	"sort"
	"sync"
)

// PanelFlag is the flag the leader chord toggles.
const PanelFlag = "panel"

// Panel is a set of named boolean flags. Actions flip them; the view
// reads them.
type Panel struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewPanel creates a panel with every flag off.
func NewPanel() *Panel {
	return &Panel{flags: make(map[string]bool)}
}

// Toggle flips the named flag and returns its new value.
func (p *Panel) Toggle(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flags[name] = !p.flags[name]
	return p.flags[name]
}

// Visible reports whether the named flag is on.
func (p *Panel) Visible(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.flags[name]
}

// On returns the names of the flags that are on, sorted.
func (p *Panel) On() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.flags))
	for name, on := range p.flags {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
