package key

import "unicode"

// Symbol is one unit of a chord sequence.
type Symbol rune

// Named symbols that have no printable form of their own in notation.
const (
	SymbolSpace  Symbol = ' '
	SymbolTab    Symbol = '\t'
	SymbolLess   Symbol = '<'
	SymbolGreat  Symbol = '>'
	SymbolBar    Symbol = '|'
	SymbolBslash Symbol = '\\'
)

// symbolNames maps notation names (lowercase) to symbols.
var symbolNames = map[string]Symbol{
	"space":  SymbolSpace,
	"tab":    SymbolTab,
	"lt":     SymbolLess,
	"gt":     SymbolGreat,
	"bar":    SymbolBar,
	"bslash": SymbolBslash,
}

// String returns the notation form of the symbol.
// Examples: "a", "<Space>", "<lt>"
func (s Symbol) String() string {
	switch s {
	case SymbolSpace:
		return "<Space>"
	case SymbolTab:
		return "<Tab>"
	case SymbolLess:
		return "<lt>"
	case SymbolBar:
		return "<Bar>"
	case SymbolBslash:
		return "<Bslash>"
	}
	return string(rune(s))
}

// IsPrintable reports whether the symbol can be typed as a chord key.
// Space and tab count as printable.
func (s Symbol) IsPrintable() bool {
	return s == SymbolSpace || s == SymbolTab || unicode.IsPrint(rune(s))
}
