package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keychord/internal/input/chain"
	"github.com/dshills/keychord/internal/input/chord"
	"github.com/dshills/keychord/internal/input/key"
)

// Build inserts the bindings of every keymap into base, in order.
//
// A binding that fails to parse, names an unknown action or conflicts with
// an earlier binding is skipped. The returned trie holds everything that
// succeeded; the error joins every failure, each naming its keymap and keys.
// Later keymaps rebinding the exact same chord replace earlier ones.
func Build(base chain.Trie[chord.Action], actions *Actions, p *key.Parser, keymaps ...*Keymap) (chain.Trie[chord.Action], error) {
	if p == nil {
		p = key.NewParser()
	}

	bindings := base
	var errs []error

	for _, km := range keymaps {
		for _, b := range km.Bindings {
			next, err := insertBinding(bindings, actions, p, km, b)
			if err != nil {
				errs = append(errs, fmt.Errorf("keymap %q, binding %q: %w", km.Name, b.Keys, err))
				continue
			}
			bindings = next
		}
	}

	return bindings, errors.Join(errs...)
}

func insertBinding(bindings chain.Trie[chord.Action], actions *Actions, p *key.Parser, km *Keymap, b Binding) (chain.Trie[chord.Action], error) {
	seq, err := b.sequence(p)
	if err != nil {
		return bindings, err
	}

	action, err := actions.Resolve(b.Action)
	if err != nil {
		return bindings, err
	}

	return bindings.Insert(seq, &Bound{
		Action:      action,
		Name:        b.Action,
		Description: b.Description,
		Keymap:      km.Name,
	})
}
