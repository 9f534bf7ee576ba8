package chain

import (
	"fmt"
	"strings"

	"github.com/dshills/keychord/internal/input/key"
)

// Trie is an immutable map from key sequences to values.
// The zero value is the empty trie and is ready to use.
type Trie[V any] struct {
	root *node[V]
	size int
}

// New returns the empty trie.
func New[V any]() Trie[V] {
	return Trie[V]{}
}

// Len returns the number of bound sequences.
func (t Trie[V]) Len() int {
	return t.size
}

// IsEmpty returns true if nothing is bound.
func (t Trie[V]) IsEmpty() bool {
	return t.root == nil
}

// Insert returns a trie with seq bound to v.
//
// Rebinding a sequence that is already bound replaces its value. If seq is
// a strict prefix of a bound sequence, or a bound sequence is a strict
// prefix of seq, Insert returns the receiver unchanged and a
// *PrefixConflictError.
func (t Trie[V]) Insert(seq key.Sequence, v V) (Trie[V], error) {
	if t.root == nil {
		return Trie[V]{root: newChain(seq, v), size: 1}, nil
	}

	root, replaced, err := t.root.insert(seq, 0, v)
	if err != nil {
		return t, err
	}

	size := t.size
	if !replaced {
		size++
	}
	return Trie[V]{root: root, size: size}, nil
}

// Remove returns a trie without seq. Removing a sequence that is not bound
// returns the receiver itself.
func (t Trie[V]) Remove(seq key.Sequence) Trie[V] {
	if t.root == nil {
		return t
	}
	root, changed := t.root.remove(seq, 0)
	if !changed {
		return t
	}
	return Trie[V]{root: root, size: t.size - 1}
}

// Lookup resolves seq against the trie.
func (t Trie[V]) Lookup(seq key.Sequence) Result[V] {
	n := t.root
	if n == nil {
		return Result[V]{}
	}

	for _, sym := range seq {
		if n.leaf {
			// seq runs past a bound sequence.
			return Result[V]{}
		}
		child, ok := n.child(sym)
		if !ok {
			return Result[V]{}
		}
		n = child
	}

	if n.leaf {
		return Result[V]{Outcome: Matched, Value: n.value}
	}
	return Result[V]{Outcome: Pending, Next: n.next()}
}

// Get returns the value bound to exactly seq.
func (t Trie[V]) Get(seq key.Sequence) (V, bool) {
	r := t.Lookup(seq)
	return r.Value, r.Outcome == Matched
}

// Walk calls fn for every binding in ascending sequence order until fn
// returns false.
func (t Trie[V]) Walk(fn func(seq key.Sequence, v V) bool) {
	if t.root == nil {
		return
	}
	t.root.walk(make(key.Sequence, 0, 8), fn)
}

// Entry is one binding in a trie.
type Entry[V any] struct {
	Sequence key.Sequence
	Value    V
}

// Entries returns every binding in ascending sequence order.
func (t Trie[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, t.size)
	t.Walk(func(seq key.Sequence, v V) bool {
		entries = append(entries, Entry[V]{Sequence: seq, Value: v})
		return true
	})
	return entries
}

// String renders one "sequence: value" line per binding.
func (t Trie[V]) String() string {
	lines := make([]string, 0, t.size)
	t.Walk(func(seq key.Sequence, v V) bool {
		lines = append(lines, fmt.Sprintf("%s: %v", seq.String(), v))
		return true
	})
	return strings.Join(lines, "\n")
}
