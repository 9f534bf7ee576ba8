package key

// Kind classifies a normalized key event.
type Kind uint8

const (
	// KindIgnored is any key the dispatcher does not react to.
	KindIgnored Kind = iota

	// KindSymbol carries one chord symbol.
	KindSymbol

	// KindEscape is the universal cancel.
	KindEscape
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindEscape:
		return "escape"
	default:
		return "ignored"
	}
}

// Event is a key event after normalization.
type Event struct {
	Kind Kind

	// Symbol is set for KindSymbol events.
	Symbol Symbol
}

// SymbolEvent creates an event carrying sym.
func SymbolEvent(sym Symbol) Event {
	return Event{Kind: KindSymbol, Symbol: sym}
}

// EscapeEvent creates an escape event.
func EscapeEvent() Event {
	return Event{Kind: KindEscape}
}

// IgnoredEvent creates an event the dispatcher will not act on.
func IgnoredEvent() Event {
	return Event{Kind: KindIgnored}
}

// String returns a short description for logs.
func (e Event) String() string {
	if e.Kind == KindSymbol {
		return e.Symbol.String()
	}
	return "<" + e.Kind.String() + ">"
}

// Normalize classifies a raw key press.
//
// Escape becomes KindEscape regardless of modifiers. A printable rune with
// no Ctrl, Alt or Meta becomes KindSymbol; the Tab key counts as the tab
// symbol. Everything else is KindIgnored.
func Normalize(k Key, r rune, mods Modifier) Event {
	switch k {
	case KeyEscape:
		return EscapeEvent()
	case KeyTab:
		if mods.ChangesMeaning() || mods.Has(ModShift) {
			return IgnoredEvent()
		}
		return SymbolEvent(SymbolTab)
	case KeyRune:
		sym := Symbol(r)
		if r == 0 || mods.ChangesMeaning() || !sym.IsPrintable() {
			return IgnoredEvent()
		}
		return SymbolEvent(sym)
	default:
		return IgnoredEvent()
	}
}
