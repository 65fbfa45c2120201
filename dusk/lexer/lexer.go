// Package lexer turns Dusk text into a lazy stream of classified tokens.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/dusk/dusk/source"
	"github.com/dhamidi/dusk/dusk/token"
)

// Lexer scans one input. Its entire position is a single offset, so State
// and Restore are constant time regardless of how much input remains.
type Lexer struct {
	input string
	pos   int
}

func New(input string) *Lexer {
	return &Lexer{input: input}
}

// State is a saved lexer position.
type State struct {
	pos int
}

func (l *Lexer) State() State { return State{pos: l.pos} }

func (l *Lexer) Restore(s State) { l.pos = s.pos }

// Offset returns the byte offset of the next unread character.
func (l *Lexer) Offset() int { return l.pos }

func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) peekByte(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return r
}

func (l *Lexer) skipTrivia() {
	for l.pos < len(l.input) {
		switch r := l.peek(); {
		case unicode.IsSpace(r):
			l.advance()
		case r == '/' && l.peekByte(1) == '/':
			if i := strings.IndexByte(l.input[l.pos:], '\n'); i >= 0 {
				l.pos += i
			} else {
				l.pos = len(l.input)
			}
		default:
			return
		}
	}
}

// Next returns the next token. Once input is exhausted it keeps returning
// an empty EOF token at the end of input.
func (l *Lexer) Next() token.Spanned {
	l.skipTrivia()
	start := l.pos
	if start >= len(l.input) {
		return l.token(token.EOF, start)
	}

	r := l.peek()
	switch {
	case isIdentStart(r):
		return l.scanIdentOrKeyword(start)
	case isDigit(r):
		return l.scanNumber(start)
	case r == '"':
		return l.scanString(start)
	}
	if kind, ok := l.scanSymbol(); ok {
		return l.token(kind, start)
	}
	return l.scanError(start)
}

func (l *Lexer) token(kind token.Kind, start int) token.Spanned {
	return token.Spanned{Kind: kind, Span: source.NewPartial(start, l.pos)}
}

func (l *Lexer) scanIdentOrKeyword(start int) token.Spanned {
	for l.pos < len(l.input) && isIdentPart(rune(l.input[l.pos])) {
		l.pos++
	}
	return l.token(token.Lookup(l.input[start:l.pos]), start)
}

func (l *Lexer) scanDigits() {
	for l.pos < len(l.input) && (isDigit(rune(l.input[l.pos])) || l.input[l.pos] == '_') {
		l.pos++
	}
}

func (l *Lexer) scanNumber(start int) token.Spanned {
	l.scanDigits()
	next := l.peekByte(1)
	if l.peekByte(0) == '.' && (isDigit(rune(next)) || next == '_') {
		l.pos++
		l.scanDigits()
		return l.token(token.Float, start)
	}
	return l.token(token.Integer, start)
}

// scanString reads a double-quoted string. Strings do not span lines; an
// unterminated string becomes an Error token reaching to the end of the line.
func (l *Lexer) scanString(start int) token.Spanned {
	l.pos++
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '"':
			l.pos++
			return l.token(token.String, start)
		case '\n':
			return l.token(token.Error, start)
		case '\\':
			l.pos++
			if l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		default:
			l.advance()
		}
	}
	return l.token(token.Error, start)
}

var twoByteSymbols = map[string]token.Kind{
	"::": token.ColonColon,
	"->": token.Arrow,
	"=>": token.FatArrow,
	"+=": token.PlusAssign,
	"-=": token.MinusAssign,
	"*=": token.StarAssign,
	"/=": token.SlashAssign,
	"<=": token.LessEqual,
	">=": token.GreaterEqual,
	"==": token.Equal,
	"!=": token.NotEqual,
}

var oneByteSymbols = map[byte]token.Kind{
	'{': token.LeftBrace,
	'}': token.RightBrace,
	'(': token.LeftParen,
	')': token.RightParen,
	'[': token.LeftBracket,
	']': token.RightBracket,
	',': token.Comma,
	'.': token.Dot,
	':': token.Colon,
	';': token.Semicolon,
	'#': token.Hash,
	'!': token.Bang,
	'=': token.Assign,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'<': token.Less,
	'>': token.Greater,
}

func (l *Lexer) scanSymbol() (token.Kind, bool) {
	if l.pos+2 <= len(l.input) {
		if kind, ok := twoByteSymbols[l.input[l.pos:l.pos+2]]; ok {
			l.pos += 2
			return kind, true
		}
	}
	if kind, ok := oneByteSymbols[l.input[l.pos]]; ok {
		l.pos++
		return kind, true
	}
	return 0, false
}

// scanError consumes the maximal run of characters that cannot start a token.
func (l *Lexer) scanError(start int) token.Spanned {
	l.advance()
	for l.pos < len(l.input) && !canStartToken(l.peek()) {
		l.advance()
	}
	return l.token(token.Error, start)
}

func canStartToken(r rune) bool {
	if r < utf8.RuneSelf {
		if _, ok := oneByteSymbols[byte(r)]; ok {
			return true
		}
	}
	return unicode.IsSpace(r) || isIdentStart(r) || isDigit(r) || r == '"'
}

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Tokenize scans all of input. The final element is always EOF.
func Tokenize(input string) []token.Spanned {
	l := New(input)
	var tokens []token.Spanned
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
