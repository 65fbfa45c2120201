package grammar

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/dusk/dusk/lexer"
	"github.com/dhamidi/dusk/dusk/token"
)

var ErrRejected = errors.New("input is not derived by the grammar")

// Terminal is a token as the recognizer sees it. Class names the lexical
// production that produced it; it is empty for keywords and symbols, which
// are matched by their text.
type Terminal struct {
	Class  string
	Text   string
	Offset int
}

var classes = map[token.Kind]string{
	token.Ident:   "identifier",
	token.Integer: "integer",
	token.Float:   "float",
	token.String:  "string",
}

// Tokenize lexes text with the Dusk lexer. Unrecognized input is an error.
func Tokenize(text string) ([]Terminal, error) {
	var out []Terminal
	for _, tok := range lexer.Tokenize(text) {
		word := text[tok.Span.Start:tok.Span.End]
		switch tok.Kind {
		case token.EOF:
			return out, nil
		case token.Error:
			return nil, fmt.Errorf("offset %d: unrecognized %q: %w", tok.Span.Start, word, ErrRejected)
		}
		out = append(out, Terminal{Class: classes[tok.Kind], Text: word, Offset: tok.Span.Start})
	}
	return out, nil
}

// Accepts reports whether text is derived from the start production.
func (g *Grammar) Accepts(start, text string) error {
	input, err := Tokenize(text)
	if err != nil {
		return err
	}
	return g.Recognize(start, input)
}

// symbol is a terminal or nonterminal on the right side of a bnf rule.
type symbol struct {
	name     string
	literal  string
	terminal bool
}

func (s symbol) matches(t Terminal) bool {
	if s.name == "" {
		return t.Class == "" && t.Text == s.literal
	}
	return s.name == t.Class
}

type rule struct {
	lhs string
	rhs []symbol
}

// bnf is the syntactic part of a grammar with options, repetitions and
// groups replaced by generated nonterminals.
type bnf struct {
	rules    []rule
	byName   map[string][]int
	nullable map[string]bool
	next     int
}

func lower(productions ebnf.Grammar) *bnf {
	b := &bnf{byName: map[string][]int{}, nullable: map[string]bool{}}
	names := make([]string, 0, len(productions))
	for name, prod := range productions {
		if !IsLexical(name) && prod.Expr != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		b.define(name, productions[name].Expr)
	}
	b.computeNullable()
	return b
}

func (b *bnf) add(lhs string, rhs []symbol) {
	b.byName[lhs] = append(b.byName[lhs], len(b.rules))
	b.rules = append(b.rules, rule{lhs: lhs, rhs: rhs})
}

func (b *bnf) fresh() string {
	b.next++
	return fmt.Sprintf("$%d", b.next)
}

func (b *bnf) define(lhs string, x ebnf.Expression) {
	if alt, ok := x.(ebnf.Alternative); ok {
		for _, e := range alt {
			b.add(lhs, b.symbols(e))
		}
		return
	}
	b.add(lhs, b.symbols(x))
}

func (b *bnf) symbols(x ebnf.Expression) []symbol {
	switch x := x.(type) {
	case nil:
		return nil
	case *ebnf.Token:
		return []symbol{{literal: x.String, terminal: true}}
	case *ebnf.Name:
		if IsLexical(x.String) {
			return []symbol{{name: x.String, terminal: true}}
		}
		return []symbol{{name: x.String}}
	case ebnf.Sequence:
		var out []symbol
		for _, e := range x {
			out = append(out, b.symbols(e)...)
		}
		return out
	case *ebnf.Group:
		if _, ok := x.Body.(ebnf.Alternative); !ok {
			return b.symbols(x.Body)
		}
		n := b.fresh()
		b.define(n, x.Body)
		return []symbol{{name: n}}
	case ebnf.Alternative:
		n := b.fresh()
		b.define(n, x)
		return []symbol{{name: n}}
	case *ebnf.Option:
		n := b.fresh()
		b.add(n, nil)
		b.define(n, x.Body)
		return []symbol{{name: n}}
	case *ebnf.Repetition:
		n, body := b.fresh(), b.fresh()
		b.define(body, x.Body)
		b.add(n, nil)
		b.add(n, []symbol{{name: body}, {name: n}})
		return []symbol{{name: n}}
	}
	// ranges only make sense in lexical productions
	return []symbol{{name: "<unmatched>", terminal: true}}
}

func (b *bnf) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, r := range b.rules {
			if b.nullable[r.lhs] {
				continue
			}
			empty := true
			for _, s := range r.rhs {
				if s.terminal || !b.nullable[s.name] {
					empty = false
					break
				}
			}
			if empty {
				b.nullable[r.lhs] = true
				changed = true
			}
		}
	}
}

type item struct {
	rule, dot, origin int
}

// Recognize runs an Earley recognizer over input. Nullable nonterminals
// are stepped over during prediction, so empty options and repetitions need
// no special completion pass.
func (g *Grammar) Recognize(start string, input []Terminal) error {
	b := g.bnf
	if len(b.byName[start]) == 0 {
		return fmt.Errorf("no syntactic production %q", start)
	}

	n := len(input)
	sets := make([][]item, n+1)
	seen := make([]map[item]bool, n+1)
	for i := range seen {
		seen[i] = map[item]bool{}
	}
	add := func(i int, it item) {
		if !seen[i][it] {
			seen[i][it] = true
			sets[i] = append(sets[i], it)
		}
	}
	for _, r := range b.byName[start] {
		add(0, item{rule: r})
	}

	furthest := 0
	for i := 0; i <= n; i++ {
		if len(sets[i]) == 0 {
			break
		}
		furthest = i
		for j := 0; j < len(sets[i]); j++ {
			it := sets[i][j]
			r := b.rules[it.rule]
			if it.dot == len(r.rhs) {
				for k := 0; k < len(sets[it.origin]); k++ {
					w := sets[it.origin][k]
					wr := b.rules[w.rule]
					if w.dot < len(wr.rhs) && !wr.rhs[w.dot].terminal && wr.rhs[w.dot].name == r.lhs {
						add(i, item{w.rule, w.dot + 1, w.origin})
					}
				}
				continue
			}
			sym := r.rhs[it.dot]
			if sym.terminal {
				if i < n && sym.matches(input[i]) {
					add(i+1, item{it.rule, it.dot + 1, it.origin})
				}
				continue
			}
			for _, k := range b.byName[sym.name] {
				add(i, item{rule: k, origin: i})
			}
			if b.nullable[sym.name] {
				add(i, item{it.rule, it.dot + 1, it.origin})
			}
		}
	}

	for _, it := range sets[n] {
		r := b.rules[it.rule]
		if r.lhs == start && it.origin == 0 && it.dot == len(r.rhs) {
			return nil
		}
	}
	if furthest < n {
		t := input[furthest]
		return fmt.Errorf("offset %d: unexpected %q: %w", t.Offset, t.Text, ErrRejected)
	}
	return fmt.Errorf("unexpected end of input: %w", ErrRejected)
}
