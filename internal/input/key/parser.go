package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidSequence is returned for malformed sequence notation.
var ErrInvalidSequence = errors.New("invalid key sequence")

// DefaultLeader is the symbol "<Leader>" expands to unless configured.
const DefaultLeader = SymbolSpace

// Parser turns sequence notation into sequences.
type Parser struct {
	// Leader is the symbol substituted for "<Leader>".
	Leader Symbol
}

// NewParser creates a parser with the default leader.
func NewParser() *Parser {
	return &Parser{Leader: DefaultLeader}
}

// ParseSequence parses notation with the default leader.
func ParseSequence(s string) (Sequence, error) {
	return NewParser().Parse(s)
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence: " + s + ": " + err.Error())
	}
	return seq
}

// Parse parses a sequence in Vim-style notation.
//
// Characters outside angle brackets are taken literally, including spaces.
// A "<" with no closing ">" is a literal "<".
func (p *Parser) Parse(s string) (Sequence, error) {
	seq := make(Sequence, 0, len(s))

	rest := s
	for rest != "" {
		if rest[0] != '<' {
			r, size := utf8.DecodeRuneInString(rest)
			seq = append(seq, Symbol(r))
			rest = rest[size:]
			continue
		}

		end := strings.IndexByte(rest, '>')
		if end == -1 {
			seq = append(seq, SymbolLess)
			rest = rest[1:]
			continue
		}

		sym, err := p.named(rest[1:end])
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", s, err)
		}
		seq = append(seq, sym)
		rest = rest[end+1:]
	}

	return seq, nil
}

// named resolves the inside of a "<...>" group.
func (p *Parser) named(name string) (Symbol, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty <>", ErrInvalidSequence)
	}
	lower := strings.ToLower(name)
	if lower == "leader" {
		return p.Leader, nil
	}
	if sym, ok := symbolNames[lower]; ok {
		return sym, nil
	}
	return 0, fmt.Errorf("%w: unknown key name <%s>", ErrInvalidSequence, name)
}
