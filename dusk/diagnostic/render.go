package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/dusk/dusk/source"
)

var ErrUnderlineOutside = errors.New("underline is not inside the displayed span")

// Block is one renderable excerpt: the lines of Span are shown, and the
// part covered by Underline, if any, is marked with carets.
type Block struct {
	Span      source.Span
	Underline *source.Span
	Message   string
	Severity  Severity
}

type Option func(*Renderer)

// WithStyle decorates rendered output, for instance with terminal colours.
func WithStyle(style Style) Option {
	return func(r *Renderer) {
		r.style = style
	}
}

// Renderer formats blocks as text. The zero value is not usable; use
// NewRenderer. A Renderer holds no mutable state and may be shared.
type Renderer struct {
	style Style
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{style: PlainStyle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces
//
//	<line>:<column> in <file>
//
//	<n> | <source line>
//	    | <carets>
//	<severity>: <message>
//
// A zero-width underline is drawn as a single caret. Output has no
// trailing newline.
func (r *Renderer) Render(b Block) (string, error) {
	if b.Span.IsZero() {
		return "", fmt.Errorf("render: %w", source.ErrOutOfRange)
	}
	if b.Underline != nil && !b.Span.Contains(*b.Underline) {
		return "", fmt.Errorf("render [%d, %d) in [%d, %d): %w",
			b.Underline.Start(), b.Underline.End(), b.Span.Start(), b.Span.End(), ErrUnderlineOutside)
	}

	src := b.Span.Source()
	anchor, _ := b.Span.Cursors()
	if b.Underline != nil {
		anchor, _ = b.Underline.Cursors()
	}
	pos := anchor.Position()

	lines := b.Span.AnnotatedLines()
	width := Digits(lines[len(lines)-1].Number)
	gutter := strings.Repeat(" ", width)

	out := []string{
		r.style.Location(fmt.Sprintf("%d:%d in %s", pos.Line, pos.Column, src.Name())),
		"",
	}
	for _, line := range lines {
		number := fmt.Sprintf("%*d |", width, line.Number)
		text := strings.TrimRight(line.Text, " \t\r")
		if text == "" {
			out = append(out, r.style.Gutter(number))
		} else {
			out = append(out, r.style.Gutter(number)+" "+text)
		}
		if b.Underline == nil {
			continue
		}
		if pad, carets, ok := caretsFor(src, line, *b.Underline); ok {
			out = append(out, r.style.Gutter(gutter+" |")+" "+pad+r.style.Caret(carets))
		}
	}
	out = append(out, r.style.Severity(b.Severity, b.Severity.String())+": "+b.Message)
	return strings.Join(out, "\n"), nil
}

// caretsFor computes the caret line for one physical line. The padding
// keeps tabs from the source so carets line up under tab-indented code.
func caretsFor(src *source.Source, line source.Line, underline source.Span) (pad, carets string, ok bool) {
	start, end := underline.Start(), underline.End()

	// the terminator belongs to the line it ends
	lineEnd := line.End
	if lineEnd < src.Len() {
		lineEnd++
	}
	if start == end {
		ok = start >= line.Start && start <= line.End
	} else {
		ok = start < lineEnd && end > line.Start
	}
	if !ok {
		return "", "", false
	}

	from := max(start, line.Start)
	to := min(end, line.End)
	from = min(from, line.End)

	var sb strings.Builder
	for _, r := range line.Text[:from-line.Start] {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	n := 0
	if to > from {
		n = utf8.RuneCountInString(src.Text()[from:to])
	}
	return sb.String(), strings.Repeat("^", max(n, 1)), true
}

// RenderDiagnostic shows the full lines touched by d and underlines d's span.
func (r *Renderer) RenderDiagnostic(d Diagnostic) (string, error) {
	underline := d.Span
	return r.Render(Block{
		Span:      d.Span.Lines(),
		Underline: &underline,
		Message:   d.Message(),
		Severity:  d.Severity,
	})
}

// Report renders every diagnostic, separated by blank lines.
func (r *Renderer) Report(diags []Diagnostic) (string, error) {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		text, err := r.RenderDiagnostic(d)
		if err != nil {
			return "", fmt.Errorf("diagnostic %q: %w", d.Message(), err)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// Render formats a block with the plain style.
func Render(span source.Span, underline *source.Span, message string, severity Severity) (string, error) {
	return NewRenderer().Render(Block{Span: span, Underline: underline, Message: message, Severity: severity})
}
