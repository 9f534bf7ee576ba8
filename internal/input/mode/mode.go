package mode

import (
	"fmt"
	"strings"
)

// Mode is the current input mode.
type Mode uint8

const (
	// Normal resolves chords.
	Normal Mode = iota

	// Insert passes keys through for text entry.
	Insert

	// Visual passes keys through for selection.
	Visual
)

// All lists every mode in declaration order.
var All = []Mode{Normal, Insert, Visual}

// String returns the lowercase mode name ("normal", "insert", "visual").
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Visual:
		return "visual"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// DisplayName returns the label shown on the status line.
func (m Mode) DisplayName() string {
	return strings.ToUpper(m.String())
}

// IsValid reports whether m is one of the declared modes.
func (m Mode) IsValid() bool {
	return m <= Visual
}

// Parse returns the mode with the given name (case-insensitive).
func Parse(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "normal", "n":
		return Normal, nil
	case "insert", "i":
		return Insert, nil
	case "visual", "v":
		return Visual, nil
	default:
		names := make([]string, len(All))
		for i, m := range All {
			names[i] = m.String()
		}
		return Normal, fmt.Errorf("unknown mode %q (want %s)", name, strings.Join(names, ", "))
	}
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor (visual mode).
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// CursorStyle returns the cursor style the presentation layer should use.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert:
		return CursorBar
	case Visual:
		return CursorUnderline
	default:
		return CursorBlock
	}
}
