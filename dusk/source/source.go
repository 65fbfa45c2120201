// Package source models locations inside Dusk source text.
//
// A Source is an immutable, shared buffer. Cursors and Spans are validated
// views into one Source: every offset they carry lies on a codepoint boundary
// of that buffer, which is checked once at construction time. PartialSpan is
// the unvalidated form used by the lexer and the AST, and is upgraded to a
// Span when a buffer is needed (diagnostics).
package source

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrOutOfRange      = errors.New("offset out of range")
	ErrNotBoundary     = errors.New("offset is not a codepoint boundary")
	ErrInvertedSpan    = errors.New("span start is after its end")
	ErrDifferentSource = errors.New("locations belong to different sources")
)

// Source is a named, read-only piece of Dusk text. It is safe to share
// between goroutines.
type Source struct {
	name string
	text string
}

// New wraps text. Invalid UTF-8 sequences are replaced with U+FFFD so that
// every offset a rune-wise scan produces is a boundary.
func New(name, text string) *Source {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	return &Source{name: name, text: text}
}

func (s *Source) Name() string { return s.name }
func (s *Source) Text() string { return s.text }
func (s *Source) Len() int     { return len(s.text) }

// IsBoundary reports whether offset may start or end a span.
func (s *Source) IsBoundary(offset int) bool {
	if offset < 0 || offset > len(s.text) {
		return false
	}
	return offset == len(s.text) || utf8.RuneStart(s.text[offset])
}

func (s *Source) check(offset int) error {
	if offset < 0 || offset > len(s.text) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, offset, len(s.text))
	}
	if !s.IsBoundary(offset) {
		return fmt.Errorf("%w: %d", ErrNotBoundary, offset)
	}
	return nil
}

// Cursor validates offset and returns a cursor pointing at it.
func (s *Source) Cursor(offset int) (Cursor, error) {
	if err := s.check(offset); err != nil {
		return Cursor{}, err
	}
	return Cursor{src: s, offset: offset}, nil
}

// Span validates the half-open range [start, end).
func (s *Source) Span(start, end int) (Span, error) {
	if err := s.check(start); err != nil {
		return Span{}, err
	}
	if err := s.check(end); err != nil {
		return Span{}, err
	}
	if start > end {
		return Span{}, fmt.Errorf("%w: [%d, %d)", ErrInvertedSpan, start, end)
	}
	return Span{src: s, start: start, end: end}, nil
}

// Whole returns the span covering the entire buffer.
func (s *Source) Whole() Span {
	return Span{src: s, start: 0, end: len(s.text)}
}

// lineStart returns the offset of the first byte of the line holding offset.
func (s *Source) lineStart(offset int) int {
	return strings.LastIndexByte(s.text[:offset], '\n') + 1
}

// lineEnd returns the offset of the newline terminating the line holding
// offset, or the end of the buffer.
func (s *Source) lineEnd(offset int) int {
	if i := strings.IndexByte(s.text[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(s.text)
}

// Position is a 1-based line and column. Columns count characters, not bytes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// positionOf scans text and counts newlines. It is linear in the length of
// text and only meant for rendering diagnostics.
func positionOf(text string) Position {
	pos := Position{Line: 1, Column: 1}
	for _, r := range text {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// Cursor is a single validated offset into a Source.
type Cursor struct {
	src    *Source
	offset int
}

func (c Cursor) Source() *Source { return c.src }
func (c Cursor) Offset() int     { return c.offset }

// Position converts the cursor into a line and column.
func (c Cursor) Position() Position {
	return positionOf(c.src.text[:c.offset])
}

func (c Cursor) String() string {
	return c.src.name + ":" + c.Position().String()
}
