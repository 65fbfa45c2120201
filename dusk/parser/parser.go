// Package parser builds Dusk syntax trees with a precedence climbing parser.
//
// Parsing never stops at the first problem. Each syntax error becomes a
// diagnostic, the offending subtree becomes an ast.Error node, and parsing
// continues after a local recovery step. Only running out of input ends a
// parse early, and every delimiter still open at that point is reported once.
package parser

import (
	"fmt"
	"slices"

	"github.com/emirpasic/gods/v2/stacks/arraystack"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/lexer"
	"github.com/dhamidi/dusk/dusk/source"
	"github.com/dhamidi/dusk/dusk/token"
)

var log = commonlog.GetLogger("dusk.parser")

// DefaultMaxSkip bounds how many tokens a single deletion may skip.
const DefaultMaxSkip = 8

type Option func(*Parser)

// WithFile sets the file name shown in diagnostics.
func WithFile(name string) Option {
	return func(p *Parser) {
		p.file = name
	}
}

// WithMaxSkip changes the token deletion limit. Values below 1 disable
// token deletion.
func WithMaxSkip(n int) Option {
	return func(p *Parser) {
		p.maxSkip = n
	}
}

// Parser holds the state of one parse. It is not safe for concurrent use;
// parse independent inputs with independent parsers.
type Parser struct {
	file    string
	maxSkip int

	src   *source.Source
	lexer *lexer.Lexer
	tok   token.Spanned
	prev  token.Spanned
	diags []diagnostic.Diagnostic

	// open delimiters, innermost on top
	open     *arraystack.Stack[token.Spanned]
	unclosed []token.Spanned

	// set when a delimiter was given up on at end of input
	unclosedAtEnd bool
}

func New(text string, opts ...Option) *Parser {
	p := &Parser{
		file:    "<input>",
		maxSkip: DefaultMaxSkip,
		open:    arraystack.New[token.Spanned](),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.src = source.New(p.file, text)
	p.lexer = lexer.New(p.src.Text())
	p.tok = p.lexer.Next()
	p.prev = token.Spanned{Kind: token.EOF}
	return p
}

// Parse reads items until the end of input.
func (p *Parser) Parse() []ast.Item {
	items := p.parseItems(token.EOF)
	p.closeOpenDelimiters()
	return items
}

// ParseExpression reads a single expression spanning the whole input.
func (p *Parser) ParseExpression() ast.Expr {
	expr := p.parseExpression(PrecStart)
	if !p.check(token.EOF) {
		start := p.tok
		for !p.check(token.EOF) {
			p.advance()
		}
		p.reportAt(source.NewPartial(start.Span.Start, p.prev.Span.End),
			diagnostic.Mismatch{Expected: diagnostic.Token(token.EOF), Found: p.found(start)})
	}
	p.closeOpenDelimiters()
	return expr
}

// Source returns the buffer the parser reads from.
func (p *Parser) Source() *source.Source { return p.src }

// Diagnostics returns what was reported so far, ordered by position.
func (p *Parser) Diagnostics() []diagnostic.Diagnostic {
	diags := slices.Clone(p.diags)
	diagnostic.Sort(diags)
	return diags
}

// ParseFile parses a whole file in one call.
func ParseFile(name, text string, opts ...Option) ([]ast.Item, []diagnostic.Diagnostic) {
	p := New(text, append([]Option{WithFile(name)}, opts...)...)
	items := p.Parse()
	return items, p.Diagnostics()
}

func (p *Parser) advance() token.Spanned {
	p.prev = p.tok
	p.tok = p.lexer.Next()
	return p.prev
}

func (p *Parser) check(kind token.Kind) bool {
	return p.tok.Kind == kind
}

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// spanOf attaches a token or node span to the source. The lexer only
// produces spans on character boundaries, so failure is a bug.
func (p *Parser) spanOf(span source.PartialSpan) source.Span {
	s, err := span.Upgrade(p.src)
	if err != nil {
		panic(fmt.Sprintf("parser: invalid span %s: %v", span, err))
	}
	return s
}

// from returns the span from start up to the end of the last consumed token.
func (p *Parser) from(start int) source.PartialSpan {
	return source.NewPartial(start, max(start, p.prev.Span.End))
}

// locate returns where a diagnostic about tok should point. End of input is
// pointed at right after the last real token.
func (p *Parser) locate(tok token.Spanned) source.PartialSpan {
	if tok.Kind == token.EOF && p.prev.Kind != token.EOF {
		return source.NewPartial(p.prev.Span.End, p.prev.Span.End)
	}
	return tok.Span
}

// found describes tok for the found side of a diagnostic. Tokens with
// variable spelling are shown as written.
func (p *Parser) found(tok token.Spanned) diagnostic.Term {
	switch tok.Kind {
	case token.Ident, token.Error, token.Integer, token.Float, token.String:
		return diagnostic.Word(tok.Text(p.src))
	}
	return diagnostic.Token(tok.Kind)
}

func (p *Parser) reportAt(span source.PartialSpan, kind diagnostic.Kind) {
	p.diags = append(p.diags, diagnostic.New(p.spanOf(span), kind))
}

// mismatch reports that the current token is not what was expected. While
// delimiters are open, running into end of input is left to the unclosed
// delimiter report.
func (p *Parser) mismatch(expected diagnostic.Term) {
	if p.check(token.EOF) && p.inDelimiter() {
		log.Debugf("suppressed %q at end of input", "expected "+expected.Describe())
		return
	}
	p.reportAt(p.locate(p.tok), diagnostic.Mismatch{Expected: expected, Found: p.found(p.tok)})
}

func (p *Parser) unexpected(span source.PartialSpan, found diagnostic.Term) {
	p.reportAt(span, diagnostic.Unexpected{Found: found})
}

// message attaches free-form text to a span.
func (p *Parser) message(span source.PartialSpan, text string) {
	p.reportAt(span, diagnostic.Message{Text: text})
}
