// Package diagnostic describes problems found in Dusk source and renders
// them as caret-underlined excerpts.
package diagnostic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/dusk/dusk/source"
	"github.com/dhamidi/dusk/dusk/token"
)

type Severity uint8

const (
	Error Severity = iota
	Warning
	Hint
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Hint:
		return "hint"
	}
	return "error"
}

// Diagnostic is an immutable report attached to a span of source.
type Diagnostic struct {
	Severity Severity
	Span     source.Span
	Kind     Kind
}

func New(span source.Span, kind Kind) Diagnostic {
	return Diagnostic{Severity: Error, Span: span, Kind: kind}
}

func (d Diagnostic) Message() string {
	return d.Kind.Message()
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message())
}

// Sort orders diagnostics by start offset, keeping detection order for
// diagnostics that start at the same place.
func Sort(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return a.Span.Start() - b.Span.Start()
	})
}

// Kind is the closed set of diagnostic reasons.
type Kind interface {
	Message() string
	kind()
}

// Unexpected reports a token that fits nowhere. Found is the token kind
// term for end of input too.
type Unexpected struct {
	Found Term
}

// Mismatch reports a token that does not satisfy what the grammar expects.
type Mismatch struct {
	Expected Term
	Found    Term
}

// UnclosedDelimiter reports an opening bracket that was never closed.
type UnclosedDelimiter struct {
	Delimiter token.Kind
}

// Message carries free-form text from a grammar rule.
type Message struct {
	Text string
}

func (Unexpected) kind()        {}
func (Mismatch) kind()          {}
func (UnclosedDelimiter) kind() {}
func (Message) kind()           {}

func (k Unexpected) Message() string {
	return "unexpected " + k.Found.Describe()
}

func (k Mismatch) Message() string {
	return "expected " + k.Expected.Describe() + ", found " + k.Found.Describe()
}

func (k UnclosedDelimiter) Message() string {
	return "unclosed delimiter " + k.Delimiter.Describe()
}

func (k Message) Message() string {
	return k.Text
}

// Term is one side of a Mismatch: a token, a literal word, a description or
// a set of alternatives.
type Term interface {
	Describe() string
}

// Token names a token kind using its display description.
type Token token.Kind

func (t Token) Describe() string { return token.Kind(t).Describe() }

// Word is a literal piece of source text, shown in backticks.
type Word string

func (w Word) Describe() string { return "`" + string(w) + "`" }

// Description is shown as written, e.g. "an expression".
type Description string

func (d Description) Describe() string { return string(d) }

// OneOf lists alternatives joined in natural language.
type OneOf []Term

func (o OneOf) Describe() string {
	parts := make([]string, len(o))
	for i, t := range o {
		parts[i] = t.Describe()
	}
	return JoinAlternatives(parts)
}

// Tokens builds a OneOf from token kinds.
func Tokens(kinds ...token.Kind) OneOf {
	terms := make(OneOf, len(kinds))
	for i, k := range kinds {
		terms[i] = Token(k)
	}
	return terms
}

// JoinAlternatives joins words as "nothing", "a", "a or b", or "a, b, or c".
func JoinAlternatives(words []string) string {
	switch len(words) {
	case 0:
		return "nothing"
	case 1:
		return words[0]
	case 2:
		return words[0] + " or " + words[1]
	}
	return strings.Join(words[:len(words)-1], ", ") + ", or " + words[len(words)-1]
}
