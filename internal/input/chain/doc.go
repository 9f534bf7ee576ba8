// Package chain implements an immutable prefix tree mapping key sequences
// ("command chains") to values.
//
// A Trie is a value. Insert and Remove never modify the receiver; they
// return a new Trie that shares every untouched subtree with the old one, so
// any number of snapshots can be held and read at once.
//
// # Invariants
//
// No branch is ever empty: removing the last entry under a branch removes
// the branch too, all the way up to the root.
//
// No stored sequence is a strict prefix of another. Binding "ab" and "abc"
// at the same time is rejected with a *PrefixConflictError, because
// completing "ab" could not both fire and wait for more keys.
//
// # Lookup
//
// Lookup has three outcomes, which is what chord dispatch needs:
//
//	r := trie.Lookup(key.SequenceOf("ab"))
//	switch r.Outcome {
//	case chain.Matched:  // fire r.Value
//	case chain.Pending:  // keep typing; r.Next lists the valid next symbols
//	case chain.NoMatch:  // reset
//	}
package chain
