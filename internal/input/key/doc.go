// Package key provides the symbol, sequence and event types for chord input.
//
// This package defines the fundamental vocabulary shared by the trie and the
// dispatcher:
//
//   - Symbol: one discrete input unit (a single character)
//   - Sequence: an ordered run of symbols, the key of a chord binding
//   - Event: a normalized key event (a symbol, an escape, or ignored)
//   - Key and Modifier: the raw key vocabulary an input adapter classifies
//
// # Sequence Notation
//
// Bindings are written in Vim-style notation:
//
//   - Literal characters: "gg", "ab", "x"
//   - Named symbols: "<Space>", "<lt>", "<gt>", "<Bar>", "<Bslash>", "<Tab>"
//   - The leader: "<Leader>f" expands to the configured leader symbol
//
// Sequences are plain slices, but every operation here treats them as
// values: Append never writes into the receiver's backing array.
package key
