package grammar

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Match reports whether the lexical production name derives exactly text.
// Alternatives take the longest match and repetitions are greedy, which is
// how the Dusk lexer scans.
func (g *Grammar) Match(name, text string) bool {
	m := &matcher{
		productions: g.productions,
		input:       text,
		memo:        map[memoKey]int{},
		visiting:    map[memoKey]bool{},
	}
	return m.name(name, 0) == len(text)
}

type memoKey struct {
	name   string
	offset int
}

type matcher struct {
	productions ebnf.Grammar
	input       string
	memo        map[memoKey]int
	visiting    map[memoKey]bool
}

// match returns the length matched by x at offset, or -1.
func (m *matcher) match(x ebnf.Expression, offset int) int {
	switch x := x.(type) {
	case nil:
		return 0
	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], x.String) {
			return len(x.String)
		}
		return -1
	case *ebnf.Range:
		return m.matchRange(x, offset)
	case *ebnf.Name:
		return m.name(x.String, offset)
	case *ebnf.Group:
		return m.match(x.Body, offset)
	case *ebnf.Option:
		return max(m.match(x.Body, offset), 0)
	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(x.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}
	case ebnf.Sequence:
		total := 0
		for _, e := range x {
			n := m.match(e, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total
	case ebnf.Alternative:
		best := -1
		for _, e := range x {
			best = max(best, m.match(e, offset))
		}
		return best
	}
	return -1
}

func (m *matcher) matchRange(x *ebnf.Range, offset int) int {
	if offset >= len(m.input) {
		return -1
	}
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	lo, _ := utf8.DecodeRuneInString(x.Begin.String)
	hi, _ := utf8.DecodeRuneInString(x.End.String)
	if r < lo || r > hi {
		return -1
	}
	return size
}

// name matches a production, memoized per offset. A production that is
// already being matched at the same offset fails, which cuts left
// recursion.
func (m *matcher) name(name string, offset int) int {
	key := memoKey{name, offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.productions[name]
	if !ok || prod.Expr == nil {
		return -1
	}
	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)
	m.memo[key] = n
	return n
}
