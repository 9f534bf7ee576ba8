// Package mode defines the modal states of chord input.
//
// There are three modes:
//   - Normal: keys accumulate into chords that are resolved against bindings
//   - Insert: keys go to the editing component untouched
//   - Visual: keys go to the selection component untouched
//
// Escape returns to Normal from any mode. Mode is a closed set; code that
// switches on it should list every mode, even when some arms do nothing.
package mode
