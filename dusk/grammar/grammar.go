// Package grammar holds the reference EBNF grammar of Dusk and tools to
// check source text against it.
//
// The hand written lexer and parser are the implementation; the grammar is
// the description. Recognize and Match exist so the two can be compared.
package grammar

import (
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Start is the production a whole file is derived from.
const Start = "File"

//go:embed dusk.ebnf
var text string

// Text returns the grammar as written.
func Text() string { return text }

// Grammar is a parsed EBNF grammar together with the rules derived from
// it for recognition.
type Grammar struct {
	productions ebnf.Grammar
	bnf         *bnf
}

// Load parses the embedded Dusk grammar.
func Load() (*Grammar, error) {
	return Parse("dusk.ebnf", strings.NewReader(text))
}

// Parse reads a grammar in the EBNF notation of golang.org/x/exp/ebnf.
func Parse(name string, r io.Reader) (*Grammar, error) {
	productions, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return &Grammar{productions: productions, bnf: lower(productions)}, nil
}

// Verify checks that every production is defined and reachable from start.
func (g *Grammar) Verify(start string) error {
	if err := ebnf.Verify(g.productions, start); err != nil {
		return fmt.Errorf("verify grammar from %s: %w", start, err)
	}
	return nil
}

// Productions returns the production names in sorted order.
func (g *Grammar) Productions() []string {
	names := make([]string, 0, len(g.productions))
	for name := range g.productions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether name is a production of the grammar.
func (g *Grammar) Has(name string) bool {
	_, ok := g.productions[name]
	return ok
}

// Literals returns the distinct literal tokens used by syntactic
// productions, sorted.
func (g *Grammar) Literals() []string {
	seen := map[string]bool{}
	for name, prod := range g.productions {
		if IsLexical(name) {
			continue
		}
		walk(prod.Expr, func(x ebnf.Expression) {
			if tok, ok := x.(*ebnf.Token); ok {
				seen[tok.String] = true
			}
		})
	}
	out := make([]string, 0, len(seen))
	for lit := range seen {
		out = append(out, lit)
	}
	slices.Sort(out)
	return out
}

// IsLexical reports whether a production name denotes a lexical
// production, which is the case for names starting in lower case.
func IsLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

func walk(x ebnf.Expression, fn func(ebnf.Expression)) {
	if x == nil {
		return
	}
	fn(x)
	switch x := x.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			walk(e, fn)
		}
	case ebnf.Sequence:
		for _, e := range x {
			walk(e, fn)
		}
	case *ebnf.Group:
		walk(x.Body, fn)
	case *ebnf.Option:
		walk(x.Body, fn)
	case *ebnf.Repetition:
		walk(x.Body, fn)
	case *ebnf.Range:
		walk(x.Begin, fn)
		walk(x.End, fn)
	}
}
