package chain

import (
	"sync"

	"github.com/google/btree"

	"github.com/dshills/keychord/internal/input/key"
)

// branchDegree is the B-tree degree for branch children. Chord fan-out is
// small, so most branches fit in a single B-tree node.
const branchDegree = 8

// node is either a leaf holding a value or a branch holding children.
// A node is never modified after it is published in a Trie.
type node[V any] struct {
	leaf  bool
	value V

	// children is ordered by symbol and never empty for a branch.
	children *btree.BTreeG[edge[V]]

	// cloneMu serializes children.Clone, which updates the source tree's
	// copy-on-write bookkeeping. Readers do not take it.
	cloneMu sync.Mutex
}

type edge[V any] struct {
	sym   key.Symbol
	child *node[V]
}

func edgeLess[V any](a, b edge[V]) bool {
	return a.sym < b.sym
}

func newLeaf[V any](v V) *node[V] {
	return &node[V]{leaf: true, value: v}
}

// newChain builds the single path for rest ending in a leaf holding v.
func newChain[V any](rest key.Sequence, v V) *node[V] {
	n := newLeaf(v)
	for i := len(rest) - 1; i >= 0; i-- {
		children := btree.NewG(branchDegree, edgeLess[V])
		children.ReplaceOrInsert(edge[V]{sym: rest[i], child: n})
		n = &node[V]{children: children}
	}
	return n
}

// child returns the child reached by sym.
func (n *node[V]) child(sym key.Symbol) (*node[V], bool) {
	e, ok := n.children.Get(edge[V]{sym: sym})
	return e.child, ok
}

// cloneChildren returns a copy-on-write copy of the children.
func (n *node[V]) cloneChildren() *btree.BTreeG[edge[V]] {
	n.cloneMu.Lock()
	defer n.cloneMu.Unlock()
	return n.children.Clone()
}

// with returns a branch equal to n with sym pointing at child.
func (n *node[V]) with(sym key.Symbol, child *node[V]) *node[V] {
	children := n.cloneChildren()
	children.ReplaceOrInsert(edge[V]{sym: sym, child: child})
	return &node[V]{children: children}
}

// without returns a branch equal to n with sym removed, or nil if that
// leaves it empty.
func (n *node[V]) without(sym key.Symbol) *node[V] {
	if n.children.Len() == 1 {
		return nil
	}
	children := n.cloneChildren()
	children.Delete(edge[V]{sym: sym})
	return &node[V]{children: children}
}

// insert binds seq[depth:] below n. replaced reports whether an existing
// leaf was overwritten.
func (n *node[V]) insert(seq key.Sequence, depth int, v V) (out *node[V], replaced bool, err error) {
	if depth == len(seq) {
		if n.leaf {
			return newLeaf(v), true, nil
		}
		return nil, false, &PrefixConflictError{
			Kind:     ExistingIsExtension,
			Sequence: seq.Clone(),
			Existing: append(seq.Clone(), n.firstPath()...),
		}
	}

	if n.leaf {
		return nil, false, &PrefixConflictError{
			Kind:     NewIsExtension,
			Sequence: seq.Clone(),
			Existing: seq[:depth].Clone(),
		}
	}

	sym := seq[depth]
	child, ok := n.child(sym)
	if !ok {
		return n.with(sym, newChain(seq[depth+1:], v)), false, nil
	}

	updated, replaced, err := child.insert(seq, depth+1, v)
	if err != nil {
		return nil, false, err
	}
	return n.with(sym, updated), replaced, nil
}

// remove unbinds seq[depth:] below n. When nothing was bound it returns n
// itself and changed is false. A nil result means n became empty.
func (n *node[V]) remove(seq key.Sequence, depth int) (out *node[V], changed bool) {
	if depth == len(seq) {
		if n.leaf {
			return nil, true
		}
		return n, false
	}
	if n.leaf {
		return n, false
	}

	sym := seq[depth]
	child, ok := n.child(sym)
	if !ok {
		return n, false
	}

	updated, changed := child.remove(seq, depth+1)
	if !changed {
		return n, false
	}
	if updated == nil {
		return n.without(sym), true
	}
	return n.with(sym, updated), true
}

// firstPath returns the smallest sequence leading from n to a leaf.
func (n *node[V]) firstPath() key.Sequence {
	var path key.Sequence
	for !n.leaf {
		e, _ := n.children.Min()
		path = append(path, e.sym)
		n = e.child
	}
	return path
}

// next returns the child symbols in ascending order.
func (n *node[V]) next() []key.Symbol {
	syms := make([]key.Symbol, 0, n.children.Len())
	n.children.Ascend(func(e edge[V]) bool {
		syms = append(syms, e.sym)
		return true
	})
	return syms
}

// walk visits every leaf below n in ascending sequence order.
// prefix is reused between calls; fn receives a copy.
func (n *node[V]) walk(prefix key.Sequence, fn func(key.Sequence, V) bool) bool {
	if n.leaf {
		return fn(prefix.Clone(), n.value)
	}
	cont := true
	n.children.Ascend(func(e edge[V]) bool {
		cont = e.child.walk(append(prefix, e.sym), fn)
		return cont
	})
	return cont
}
