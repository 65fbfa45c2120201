package source

import "fmt"

// Span is a validated half-open byte range [Start, End) into a Source.
type Span struct {
	src   *Source
	start int
	end   int
}

// SpanFromCursors builds the span between two cursors of the same source.
func SpanFromCursors(start, end Cursor) (Span, error) {
	if start.src != end.src {
		return Span{}, ErrDifferentSource
	}
	if start.offset > end.offset {
		return Span{}, fmt.Errorf("%w: [%d, %d)", ErrInvertedSpan, start.offset, end.offset)
	}
	return Span{src: start.src, start: start.offset, end: end.offset}, nil
}

func (s Span) Source() *Source { return s.src }
func (s Span) Start() int      { return s.start }
func (s Span) End() int        { return s.end }
func (s Span) Len() int        { return s.end - s.start }
func (s Span) IsEmpty() bool   { return s.start == s.end }
func (s Span) IsZero() bool    { return s.src == nil }

// Text returns the slice of source the span covers.
func (s Span) Text() string {
	return s.src.text[s.start:s.end]
}

// Cursors returns cursors at both ends of the span.
func (s Span) Cursors() (Cursor, Cursor) {
	return Cursor{src: s.src, offset: s.start}, Cursor{src: s.src, offset: s.end}
}

// Partial drops the buffer reference.
func (s Span) Partial() PartialSpan {
	return PartialSpan{Start: s.start, End: s.end}
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.src == other.src && other.start >= s.start && other.end <= s.end
}

// Union returns the smallest span containing both s and other.
func (s Span) Union(other Span) (Span, error) {
	if s.src != other.src {
		return Span{}, ErrDifferentSource
	}
	return Span{src: s.src, start: min(s.start, other.start), end: max(s.end, other.end)}, nil
}

// Lines widens the span to whole lines, excluding the final line terminator.
func (s Span) Lines() Span {
	end := s.end
	if end > s.start {
		// the last byte covered decides the last line
		end--
	}
	return Span{src: s.src, start: s.src.lineStart(s.start), end: s.src.lineEnd(end)}
}

// Line is one physical line of a source.
type Line struct {
	Number int
	Start  int    // offset of the first byte
	End    int    // offset of the terminator, or of the end of the buffer
	Text   string // without the terminator
}

// AnnotatedLines returns every physical line the span touches, numbered from 1.
// An empty span touches the line holding its start.
func (s Span) AnnotatedLines() []Line {
	whole := s.Lines()
	number := positionOf(s.src.text[:whole.start]).Line

	var lines []Line
	offset := whole.start
	for {
		end := s.src.lineEnd(offset)
		lines = append(lines, Line{
			Number: number,
			Start:  offset,
			End:    end,
			Text:   s.src.text[offset:end],
		})
		if end >= whole.end {
			return lines
		}
		offset = end + 1
		number++
	}
}

func (s Span) String() string {
	if s.src == nil {
		return "<no span>"
	}
	start, _ := s.Cursors()
	return start.String()
}

// PartialSpan is a buffer-independent [Start, End) pair. Tokens and AST nodes
// carry partial spans; Upgrade validates them against a Source.
type PartialSpan struct {
	Start int
	End   int
}

func NewPartial(start, end int) PartialSpan {
	return PartialSpan{Start: start, End: end}
}

func (p PartialSpan) Len() int { return p.End - p.Start }

// Union returns the smallest partial span containing p and other.
func (p PartialSpan) Union(other PartialSpan) PartialSpan {
	return PartialSpan{Start: min(p.Start, other.Start), End: max(p.End, other.End)}
}

// Upgrade attaches p to src, failing if either offset is not a boundary.
func (p PartialSpan) Upgrade(src *Source) (Span, error) {
	return src.Span(p.Start, p.End)
}

// Slice returns the text p covers in src without validating it.
func (p PartialSpan) Slice(src *Source) string {
	return src.text[p.Start:p.End]
}

func (p PartialSpan) String() string {
	return fmt.Sprintf("%d..%d", p.Start, p.End)
}
