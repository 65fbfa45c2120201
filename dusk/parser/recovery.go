package parser

import (
	"slices"

	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/dusk/lexer"
	"github.com/dhamidi/dusk/dusk/source"
	"github.com/dhamidi/dusk/dusk/token"
)

// snapshot is everything needed to rewind the parser. The lexer position is
// a single offset, so taking one costs the same however much input is left.
type snapshot struct {
	lexer    lexer.State
	tok      token.Spanned
	prev     token.Spanned
	diags    int
	open     []token.Spanned
	unclosed int
	atEnd    bool
}

func (p *Parser) save() snapshot {
	return snapshot{
		lexer:    p.lexer.State(),
		tok:      p.tok,
		prev:     p.prev,
		diags:    len(p.diags),
		open:     p.open.Values(),
		unclosed: len(p.unclosed),
		atEnd:    p.unclosedAtEnd,
	}
}

func (p *Parser) restore(s snapshot) {
	p.lexer.Restore(s.lexer)
	p.tok = s.tok
	p.prev = s.prev
	p.diags = p.diags[:s.diags]
	p.unclosed = p.unclosed[:s.unclosed]
	p.unclosedAtEnd = s.atEnd
	p.open.Clear()
	// Values lists the top first
	for i := len(s.open) - 1; i >= 0; i-- {
		p.open.Push(s.open[i])
	}
}

// try runs fn speculatively. When fn reports failure, or reports a
// diagnostic, the parser is rewound to where it was before the attempt.
func try[T any](p *Parser, fn func() (T, bool)) (T, bool) {
	saved := p.save()
	v, ok := fn()
	if !ok || len(p.diags) > saved.diags {
		log.Debugf("backtracking to offset %d", saved.tok.Span.Start)
		p.restore(saved)
		var zero T
		return zero, false
	}
	return v, true
}

// mustProgress returns a function that checks whether the parser has
// advanced since it was created. When it has not, the current token is
// reported and skipped so the calling loop cannot spin forever.
func (p *Parser) mustProgress() func() bool {
	saved := p.tok.Span
	return func() bool {
		if p.tok.Span != saved {
			return true
		}
		if !p.check(token.EOF) {
			tok := p.advance()
			p.unexpected(tok.Span, p.found(tok))
		}
		return false
	}
}

// expect consumes kind. When it is missing, the parser first tries token
// insertion: if the current token is in follow it acts as though kind had
// been there. Otherwise it tries token deletion: skip a bounded run of
// tokens to find kind. Both report one Mismatch. expect returns false when
// neither applies; nothing is consumed in that case.
func (p *Parser) expect(kind token.Kind, follow token.Set) bool {
	if p.match(kind) {
		return true
	}
	if follow.Has(p.tok.Kind) {
		log.Debugf("inserting %s before %s", kind, p.tok.Kind)
		p.mismatch(diagnostic.Token(kind))
		return true
	}
	if p.skipTo(kind) {
		return true
	}
	p.mismatch(diagnostic.Token(kind))
	return false
}

// skipTo deletes up to maxSkip tokens looking for kind. Brackets opened
// inside the deleted run are skipped along with their closers; an opener
// that is never closed does not hide kind. On success the skipped run is
// reported, unless a diagnostic already points at its first token, kind is
// consumed and true is returned. On failure the parser is left untouched.
func (p *Parser) skipTo(kind token.Kind) bool {
	if p.maxSkip < 1 {
		return false
	}
	saved := p.save()
	first := p.tok
	var owed []token.Kind
	for range p.maxSkip {
		switch {
		case p.tok.In(token.OpeningBracket):
			owed = append(owed, closers[p.tok.Kind])
		case len(owed) > 0 && p.check(owed[len(owed)-1]):
			owed = owed[:len(owed)-1]
		case p.stopsRecovery(p.tok):
			p.restore(saved)
			return false
		}
		p.advance()
		if p.check(kind) && (len(owed) == 0 || owed[len(owed)-1] != kind) {
			skipped := source.NewPartial(first.Span.Start, p.prev.Span.End)
			log.Debugf("deleting %s to reach %s", skipped, kind)
			if !p.reportedAt(first) {
				p.reportAt(skipped, diagnostic.Mismatch{Expected: diagnostic.Token(kind), Found: p.foundRun(first, p.prev)})
			}
			p.advance()
			return true
		}
	}
	p.restore(saved)
	return false
}

// reportedAt reports whether the latest diagnostic starts at tok.
func (p *Parser) reportedAt(tok token.Spanned) bool {
	n := len(p.diags)
	return n > 0 && p.diags[n-1].Span.Start() == tok.Span.Start
}

// foundRun describes the tokens from first to last.
func (p *Parser) foundRun(first, last token.Spanned) diagnostic.Term {
	if first == last {
		return p.found(first)
	}
	return diagnostic.Word(source.NewPartial(first.Span.Start, last.Span.End).Slice(p.src))
}

// stopsRecovery reports whether tok must not be skipped: statement ends,
// end of input, brackets that open something new, and brackets that close
// a delimiter that is currently open.
func (p *Parser) stopsRecovery(tok token.Spanned) bool {
	switch {
	case tok.Is(token.EOF), tok.Is(token.Semicolon):
		return true
	case tok.In(token.OpeningBracket):
		return true
	case tok.In(token.ClosingBracket):
		return p.closesOpen(tok.Kind)
	}
	return false
}

var closers = map[token.Kind]token.Kind{
	token.LeftParen:   token.RightParen,
	token.LeftBracket: token.RightBracket,
	token.LeftBrace:   token.RightBrace,
}

// closesOpen reports whether kind closes any delimiter currently open.
func (p *Parser) closesOpen(kind token.Kind) bool {
	for _, open := range p.open.Values() {
		if closers[open.Kind] == kind {
			return true
		}
	}
	return false
}

// openDelimiter consumes the current opening bracket and tracks it.
func (p *Parser) openDelimiter() token.Spanned {
	tok := p.advance()
	p.open.Push(tok)
	return tok
}

// closeDelimiter consumes the bracket closing the innermost open delimiter,
// deleting a short run of stray tokens before it if needed. A delimiter that
// cannot be closed is remembered and reported once, as unclosed, when the
// parse ends.
func (p *Parser) closeDelimiter() bool {
	open, ok := p.open.Pop()
	if !ok {
		panic("parser: closing a delimiter that was never opened")
	}
	closing := closers[open.Kind]
	if p.match(closing) || p.skipTo(closing) {
		return true
	}
	log.Debugf("%s at %s is not closed before %s", open.Kind, open.Span, p.tok.Kind)
	p.unclosed = append(p.unclosed, open)
	if p.check(token.EOF) {
		p.unclosedAtEnd = true
	}
	return false
}

// inDelimiter reports whether input is ending inside a delimiter: one is
// still open, or one was given up on because input ended. A delimiter
// abandoned earlier in the file does not count.
func (p *Parser) inDelimiter() bool {
	return !p.open.Empty() || p.unclosedAtEnd
}

// closeOpenDelimiters reports every delimiter that was never closed, in the
// order they were opened.
func (p *Parser) closeOpenDelimiters() {
	unclosed := p.unclosed
	for _, open := range p.open.Values() {
		unclosed = append(unclosed, open)
	}
	slices.SortFunc(unclosed, func(a, b token.Spanned) int {
		return a.Span.Start - b.Span.Start
	})
	for _, open := range unclosed {
		p.reportAt(open.Span, diagnostic.UnclosedDelimiter{Delimiter: open.Kind})
	}
	p.open.Clear()
	p.unclosed = nil
	p.unclosedAtEnd = false
}
