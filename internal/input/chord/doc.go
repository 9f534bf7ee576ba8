// Package chord drives a chain.Trie of actions from a stream of key events.
//
// The Dispatcher owns the bindings, the current mode and the pending chord
// buffer. Each event is handled completely before OnKey returns:
//
//	Escape            -> Normal mode, buffer cleared (any mode)
//	Symbol in Normal  -> append to buffer, then look the buffer up:
//	                     Matched: invoke the action once, clear the buffer
//	                     Pending: keep the buffer
//	                     NoMatch: clear the buffer
//	Symbol in Insert  -> ignored here; the editor consumes it
//	Symbol in Visual  -> ignored here; the selection consumes it
//
// Step is the same transition as a pure function, for callers that keep
// their own (mode, buffer) state.
//
// A Dispatcher is not safe for concurrent use. Actions run synchronously on
// the caller's goroutine and must not block.
package chord
