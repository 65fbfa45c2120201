package parser

import (
	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/source"
	"github.com/dhamidi/dusk/dusk/token"
)

var valueFollow = token.NewSet(token.Ident, token.Integer, token.Float, token.String,
	token.True, token.False, token.LeftParen, token.Not, token.Plus, token.Minus)

// parseItems parses items until end, which is not consumed.
func (p *Parser) parseItems(end token.Kind) []ast.Item {
	var items []ast.Item
	for !p.check(end) && !p.check(token.EOF) {
		progress := p.mustProgress()
		if p.match(token.Semicolon) {
			continue
		}
		items = append(items, p.parseItem())
		progress()
	}
	return items
}

func (p *Parser) parseItem() ast.Item {
	switch p.tok.Kind {
	case token.Module:
		return p.parseModule()
	case token.Struct:
		return p.parseStruct()
	case token.Fn:
		return p.parseFunction()
	case token.Let:
		return p.parseLet()
	case token.Hash:
		return p.parseMetadata()
	}
	if p.tok.In(token.FirstTokenOfExpression) {
		return p.parseExpressionItem()
	}
	return p.skipUnexpected()
}

// skipUnexpected consumes a run of tokens that cannot start an item.
func (p *Parser) skipUnexpected() ast.Item {
	first := p.advance()
	for !p.tok.In(token.FirstTokenOfExpression|token.ItemKeyword) && !p.check(token.Hash) && !p.stopsRecovery(p.tok) {
		p.advance()
	}
	span := p.from(first.Span.Start)
	p.unexpected(span, p.foundRun(first, p.prev))
	return &ast.Error{Base: ast.At(span)}
}

// parseExpressionItem parses `expr;`.
func (p *Parser) parseExpressionItem() ast.Item {
	start := p.tok.Span.Start
	expr := p.parseExpression(PrecStart)
	p.expect(token.Semicolon, expressionFollow)
	return &ast.Expression{Base: ast.At(p.from(start)), Expr: expr}
}

// parseModule parses `module name;`.
func (p *Parser) parseModule() ast.Item {
	start := p.advance().Span.Start
	name := p.parseName()
	p.expect(token.Semicolon, expressionFollow)
	if name == nil {
		return &ast.Error{Base: ast.At(p.from(start))}
	}
	return &ast.Module{Base: ast.At(p.from(start)), Name: name}
}

// parseStruct parses `struct Name { field: Type, ... }`.
func (p *Parser) parseStruct() ast.Item {
	start := p.advance().Span.Start
	name := p.parseName()
	var fields []ast.Expr
	if p.check(token.LeftBrace) {
		p.openDelimiter()
		fields = p.parseList(token.RightBrace)
		p.closeDelimiter()
	} else {
		p.mismatch(diagnostic.Token(token.LeftBrace))
	}
	return &ast.Struct{Base: ast.At(p.from(start)), Name: name, Fields: fields}
}

// parseFunction parses `fn name(params) [-> Type] { body }` and the body
// less declaration `fn name(params) [-> Type];`.
func (p *Parser) parseFunction() ast.Item {
	start := p.advance().Span.Start
	fn := &ast.Function{Name: p.parseName()}
	if p.check(token.LeftParen) {
		p.openDelimiter()
		fn.Params = p.parseList(token.RightParen)
		p.closeDelimiter()
	} else {
		p.mismatch(diagnostic.Token(token.LeftParen))
	}
	fn.Return = p.parseReturnType()
	switch {
	case p.check(token.LeftBrace):
		fn.Body = p.parseBlock()
	case p.match(token.Semicolon):
	default:
		p.mismatch(diagnostic.Tokens(token.LeftBrace, token.Semicolon))
	}
	fn.Loc = p.from(start)
	return fn
}

// parseReturnType parses an optional `-> Type`. The annotation is first
// parsed speculatively; only when that attempt fails is it parsed again
// for real, so that its problems are reported.
func (p *Parser) parseReturnType() ast.Expr {
	if !p.check(token.Arrow) {
		return nil
	}
	ret, ok := try(p, func() (ast.Expr, bool) {
		p.advance()
		ret := p.parseExpression(PrecPair)
		return ret, p.check(token.LeftBrace) || p.check(token.Semicolon)
	})
	if ok {
		return ret
	}
	log.Debugf("return type at %s did not parse cleanly", p.tok.Span)
	p.advance()
	return p.parseExpression(PrecPair)
}

func (p *Parser) parseBlock() *ast.Block {
	open := p.openDelimiter()
	items := p.parseItems(token.RightBrace)
	p.closeDelimiter()
	return &ast.Block{Base: ast.At(p.from(open.Span.Start)), Items: items}
}

// parseLet parses `let pattern = value;`.
func (p *Parser) parseLet() ast.Item {
	start := p.advance().Span.Start
	target := p.parseExpression(PrecStatement)
	var value ast.Expr
	if p.expect(token.Assign, valueFollow) {
		value = p.parseExpression(PrecStart)
	} else {
		value = &ast.Error{Base: ast.At(source.NewPartial(p.tok.Span.Start, p.tok.Span.Start))}
	}
	p.expect(token.Semicolon, expressionFollow)
	return &ast.Assignment{
		Base:   ast.At(p.from(start)),
		Kind:   ast.ScopeAssign,
		Op:     ast.Set,
		Target: target,
		Value:  value,
	}
}

// parseMetadata parses `#[meta] item` and `#![meta]`.
func (p *Parser) parseMetadata() ast.Item {
	start := p.advance().Span.Start
	meta := &ast.Metadata{Inner: p.match(token.Bang)}
	if p.check(token.LeftBracket) {
		p.openDelimiter()
		meta.Meta = p.parseExpression(PrecStart)
		p.closeDelimiter()
	} else {
		p.mismatch(diagnostic.Token(token.LeftBracket))
		meta.Meta = &ast.Error{Base: ast.At(source.NewPartial(p.tok.Span.Start, p.tok.Span.Start))}
	}
	if !meta.Inner {
		switch {
		case p.check(token.EOF) && p.inDelimiter():
		case p.check(token.EOF) || p.check(token.RightBrace):
			p.message(p.from(start), "metadata must be followed by an item")
		default:
			meta.Subject = p.parseItem()
		}
	}
	meta.Loc = p.from(start)
	return meta
}
