package parser

import (
	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/source"
	"github.com/dhamidi/dusk/dusk/token"
)

var anExpression = diagnostic.Description("an expression")

// parseExpression parses an expression whose operators all bind tighter
// than min. It always returns a node; problems yield ast.Error nodes.
func (p *Parser) parseExpression(min Precedence) ast.Expr {
	left := p.parsePrefix()
	for {
		rule := infixRules[p.tok.Kind]
		if rule.parse == nil || rule.prec <= min {
			return left
		}
		op := p.advance()
		left = rule.parse(p, left, op)
	}
}

func (p *Parser) parsePrefix() ast.Expr {
	tok := p.tok
	switch {
	case tok.In(token.UnaryOperator):
		p.advance()
		operand := p.parseExpression(PrecPrefix)
		return &ast.Unary{Base: ast.At(p.from(tok.Span.Start)), Op: unaryOps[tok.Kind], Operand: operand}
	case tok.Is(token.True), tok.Is(token.False):
		p.advance()
		return &ast.Bool{Base: ast.At(tok.Span), Value: tok.Is(token.True)}
	case tok.Is(token.Integer):
		p.advance()
		return &ast.Integer{Base: ast.At(tok.Span), Text: tok.Text(p.src)}
	case tok.Is(token.Float):
		p.advance()
		return &ast.Float{Base: ast.At(tok.Span), Text: tok.Text(p.src)}
	case tok.Is(token.String):
		p.advance()
		return &ast.String{Base: ast.At(tok.Span), Text: tok.Text(p.src)}
	case tok.Is(token.Ident):
		return p.parseIdent()
	case tok.Is(token.LeftParen):
		return p.parseGroup()
	case tok.Is(token.LeftBracket):
		return p.skipBrackets()
	}

	p.mismatch(anExpression)
	if p.consumableGarbage(tok) {
		p.advance()
		return &ast.Error{Base: ast.At(tok.Span)}
	}
	at := p.locate(tok).Start
	return &ast.Error{Base: ast.At(source.NewPartial(at, at))}
}

// consumableGarbage reports whether a token that cannot start an expression
// may be swallowed into an Error node. Tokens that end statements, start
// items, open brackets or act as operators are left for the caller.
func (p *Parser) consumableGarbage(tok token.Spanned) bool {
	if tok.In(token.Statement | token.ItemKeyword | token.OpeningBracket) {
		return false
	}
	if tok.Is(token.Hash) || infixRules[tok.Kind].parse != nil {
		return false
	}
	return true
}

func (p *Parser) parseIdent() *ast.Ident {
	tok := p.advance()
	return &ast.Ident{Base: ast.At(tok.Span), Name: tok.Text(p.src)}
}

// parseName parses a declared name, reporting and returning nil when the
// current token is not an identifier.
func (p *Parser) parseName() *ast.Ident {
	if !p.check(token.Ident) {
		p.mismatch(diagnostic.Token(token.Ident))
		return nil
	}
	return p.parseIdent()
}

// parseGroup parses `()`, `(expr)` and `(a, b, ...)`. Parentheses around a
// sequence become part of its span; around anything else they only group.
func (p *Parser) parseGroup() ast.Expr {
	open := p.openDelimiter()
	if p.check(token.RightParen) {
		p.closeDelimiter()
		return &ast.Sequence{Base: ast.At(p.from(open.Span.Start))}
	}
	inner := p.parseExpression(PrecStart)
	if !p.closeDelimiter() {
		return &ast.Error{Base: ast.At(p.from(open.Span.Start))}
	}
	if seq, ok := inner.(*ast.Sequence); ok {
		seq.Loc = p.from(open.Span.Start)
	}
	return inner
}

// skipBrackets reports `[...]` in expression position once and consumes
// it up to the matching `]`, so its contents are not reported again.
func (p *Parser) skipBrackets() ast.Expr {
	p.mismatch(anExpression)
	open := p.openDelimiter()
	p.parseList(closers[open.Kind])
	p.closeDelimiter()
	return &ast.Error{Base: ast.At(p.from(open.Span.Start))}
}

func (p *Parser) parseBinary(left ast.Expr, op token.Spanned) ast.Expr {
	right := p.parseExpression(infixRules[op.Kind].operand())
	return &ast.Binary{
		Base:  ast.At(p.from(left.Span().Start)),
		Op:    binaryOps[op.Kind],
		Left:  left,
		Right: right,
	}
}

func (p *Parser) parseAssignment(target ast.Expr, op token.Spanned) ast.Expr {
	value := p.parseExpression(infixRules[op.Kind].operand())
	return &ast.Assignment{
		Base:   ast.At(p.from(target.Span().Start)),
		Kind:   ast.ValueAssign,
		Op:     assignOps[op.Kind],
		Target: target,
		Value:  value,
	}
}

func (p *Parser) parsePair(key ast.Expr, op token.Spanned) ast.Expr {
	value := p.parseExpression(infixRules[op.Kind].operand())
	return &ast.Pair{Base: ast.At(p.from(key.Span().Start)), Key: key, Value: value}
}

func (p *Parser) parsePath(target ast.Expr, op token.Spanned) ast.Expr {
	if !p.check(token.Ident) {
		p.mismatch(diagnostic.Token(token.Ident))
		return &ast.Error{Base: ast.At(p.from(target.Span().Start))}
	}
	kind := ast.Member
	if op.Is(token.ColonColon) {
		kind = ast.Scope
	}
	name := p.parseIdent()
	return &ast.Path{Base: ast.At(p.from(target.Span().Start)), Kind: kind, Target: target, Name: name}
}

// parseCall is entered with the opening parenthesis already consumed.
func (p *Parser) parseCall(callee ast.Expr, open token.Spanned) ast.Expr {
	p.open.Push(open)
	args := p.parseList(token.RightParen)
	if !p.closeDelimiter() {
		return &ast.Error{Base: ast.At(p.from(callee.Span().Start))}
	}
	return &ast.Call{Base: ast.At(p.from(callee.Span().Start)), Callee: callee, Args: args}
}

// parseSequence flattens `a, b, c` into one node. It is entered with the
// first comma consumed. A single trailing comma is accepted.
func (p *Parser) parseSequence(first ast.Expr, _ token.Spanned) ast.Expr {
	elements := []ast.Expr{first}
	for {
		for p.check(token.Comma) {
			p.mismatch(anExpression)
			p.advance()
		}
		if p.tok.In(token.Statement) {
			break
		}
		elements = append(elements, p.parseExpression(PrecSequence))
		if !p.check(token.Comma) || p.trailingComma(token.Statement) {
			break
		}
		p.advance()
	}
	return &ast.Sequence{Base: ast.At(p.from(first.Span().Start)), Elements: elements}
}

// trailingComma consumes a comma when the token after it belongs to stop.
func (p *Parser) trailingComma(stop token.Category) bool {
	_, ok := try(p, func() (struct{}, bool) {
		p.advance()
		return struct{}{}, p.tok.In(stop)
	})
	return ok
}

// parseList parses comma separated elements up to, but not including,
// closing. Missing or doubled separators are reported and parsing goes on.
func (p *Parser) parseList(closing token.Kind) []ast.Expr {
	var elements []ast.Expr
	for !p.check(closing) && !p.check(token.EOF) {
		if p.check(token.Comma) {
			p.mismatch(anExpression)
			p.advance()
			continue
		}
		start := p.tok.Span
		elements = append(elements, p.parseExpression(PrecSequence))
		switch {
		case p.check(closing):
		case p.check(token.Comma):
			p.advance()
		case p.stopsRecovery(p.tok) || p.tok.In(token.ClosingBracket):
			return elements
		case p.tok.Span == start:
			// the element already reported this token
			p.advance()
		default:
			p.mismatch(diagnostic.Tokens(token.Comma, closing))
			if !p.tok.In(token.FirstTokenOfExpression) {
				p.advance()
			}
		}
	}
	return elements
}
