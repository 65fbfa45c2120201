package diagnostic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/dusk/dusk/source"
	"github.com/dhamidi/dusk/dusk/token"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		line int
		want int
	}{
		{1, 1}, {9, 1}, {10, 2}, {99, 2}, {100, 3}, {999, 3}, {1000, 4},
		{65535, 5}, {99999, 5}, {100000, 6}, {1 << 20, 7},
		{999999999, 9}, {1000000000, 10}, {4294967295, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Digits(tt.line), "line %d", tt.line)
	}
	assert.Panics(t, func() { Digits(0) })
}

func TestLog2(t *testing.T) {
	for shift := range 32 {
		v := uint32(1) << shift
		assert.Equal(t, uint32(shift), log2(v))
		if shift > 0 {
			assert.Equal(t, uint32(shift-1), log2(v-1))
		}
	}
}

func TestJoinAlternatives(t *testing.T) {
	assert.Equal(t, "nothing", JoinAlternatives(nil))
	assert.Equal(t, "a", JoinAlternatives([]string{"a"}))
	assert.Equal(t, "a or b", JoinAlternatives([]string{"a", "b"}))
	assert.Equal(t, "a, b, or c", JoinAlternatives([]string{"a", "b", "c"}))
}

func TestMessages(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Unexpected{Found: Token(token.EOF)}, "unexpected end of input"},
		{Unexpected{Found: Word("@@")}, "unexpected `@@`"},
		{Mismatch{Expected: Token(token.RightParen), Found: Token(token.Semicolon)}, "expected `)`, found `;`"},
		{Mismatch{Expected: Tokens(token.Comma, token.RightParen), Found: Token(token.Or)}, "expected `,` or `)`, found the keyword `or`"},
		{Mismatch{Expected: Description("an expression"), Found: Token(token.Ident)}, "expected an expression, found an identifier"},
		{UnclosedDelimiter{Delimiter: token.LeftBrace}, "unclosed delimiter `{`"},
		{Message{Text: "metadata needs a subject"}, "metadata needs a subject"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.Message())
	}
}

func mustSpan(t *testing.T, src *source.Source, start, end int) source.Span {
	t.Helper()
	span, err := src.Span(start, end)
	require.NoError(t, err)
	return span
}

func TestRenderWithoutUnderline(t *testing.T) {
	src := source.New("test.dusk", "let a = 1;\nlet b = 2;\nlet c = 3;\n")
	out, err := Render(mustSpan(t, src, 11, 21), nil, "shadowed binding", Warning)
	require.NoError(t, err)

	want := strings.Join([]string{
		"2:1 in test.dusk",
		"",
		"2 | let b = 2;",
		"warning: shadowed binding",
	}, "\n")
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "^")
}

func TestRenderGutterWidth(t *testing.T) {
	var lines []string
	for i := 1; i <= 12; i++ {
		lines = append(lines, "x;")
	}
	src := source.New("wide.dusk", strings.Join(lines, "\n"))
	// lines 9 and 10
	out, err := Render(mustSpan(t, src, 24, 29), nil, "here", Error)
	require.NoError(t, err)

	want := strings.Join([]string{
		"9:1 in wide.dusk",
		"",
		" 9 | x;",
		"10 | x;",
		"error: here",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderMultiLineUnderline(t *testing.T) {
	src := source.New("test.dusk", "fn main() {\n    foo(1,\n        2);\n}\n")
	underline := mustSpan(t, src, 16, 33)
	out, err := Render(underline.Lines(), &underline, "call spans lines", Error)
	require.NoError(t, err)

	want := strings.Join([]string{
		"2:5 in test.dusk",
		"",
		"2 |     foo(1,",
		"  |     ^^^^^^",
		"3 |         2);",
		"  | ^^^^^^^^^^",
		"error: call spans lines",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderOnlyMarksUnderlinedLines(t *testing.T) {
	src := source.New("test.dusk", "a;\nb;\nc;")
	underline := mustSpan(t, src, 3, 4)
	out, err := Render(src.Whole(), &underline, "b", Hint)
	require.NoError(t, err)

	want := strings.Join([]string{
		"2:1 in test.dusk",
		"",
		"1 | a;",
		"2 | b;",
		"  | ^",
		"3 | c;",
		"hint: b",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRenderZeroWidthUnderline(t *testing.T) {
	src := source.New("test.dusk", "foo(\n")
	underline := mustSpan(t, src, 4, 4)
	span := mustSpan(t, src, 0, 4)

	first, err := Render(span, &underline, "expected `)`", Error)
	require.NoError(t, err)
	second, err := Render(span, &underline, "expected `)`", Error)
	require.NoError(t, err)

	want := strings.Join([]string{
		"1:5 in test.dusk",
		"",
		"1 | foo(",
		"  |     ^",
		"error: expected `)`",
	}, "\n")
	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}

func TestRenderUnderlinedNewline(t *testing.T) {
	src := source.New("test.dusk", "ab\ncd")
	underline := mustSpan(t, src, 2, 3)
	out, err := Render(mustSpan(t, src, 0, 3), &underline, "newline", Error)
	require.NoError(t, err)
	assert.Equal(t, "1:3 in test.dusk\n\n1 | ab\n  |   ^\nerror: newline", out)
}

func TestRenderCountsCharacters(t *testing.T) {
	src := source.New("test.dusk", "let é = ü;")
	underline := mustSpan(t, src, 9, 11)
	out, err := Render(src.Whole(), &underline, "umlaut", Error)
	require.NoError(t, err)
	assert.Equal(t, "1:9 in test.dusk\n\n1 | let é = ü;\n  |         ^\nerror: umlaut", out)
}

func TestRenderKeepsTabs(t *testing.T) {
	src := source.New("test.dusk", "\tx = @;")
	underline := mustSpan(t, src, 5, 6)
	out, err := Render(src.Whole(), &underline, "bad token", Error)
	require.NoError(t, err)
	assert.Equal(t, "1:6 in test.dusk\n\n1 | \tx = @;\n  | \t    ^\nerror: bad token", out)
}

func TestRenderRejectsUnderlineOutsideSpan(t *testing.T) {
	src := source.New("test.dusk", "a;\nb;\n")
	underline := mustSpan(t, src, 3, 4)
	_, err := Render(mustSpan(t, src, 0, 2), &underline, "nope", Error)
	assert.ErrorIs(t, err, ErrUnderlineOutside)

	other := source.New("other.dusk", "a;\nb;\n")
	foreign := mustSpan(t, other, 0, 1)
	_, err = Render(mustSpan(t, src, 0, 2), &foreign, "nope", Error)
	assert.ErrorIs(t, err, ErrUnderlineOutside)
}

func TestReport(t *testing.T) {
	src := source.New("main.dusk", "foo(;\nbar")
	diags := []Diagnostic{
		New(mustSpan(t, src, 6, 9), Unexpected{Found: Word("bar")}),
		New(mustSpan(t, src, 3, 4), UnclosedDelimiter{Delimiter: token.LeftParen}),
	}
	Sort(diags)

	out, err := NewRenderer().Report(diags)
	require.NoError(t, err)
	want := strings.Join([]string{
		"1:4 in main.dusk",
		"",
		"1 | foo(;",
		"  |    ^",
		"error: unclosed delimiter `(`",
		"",
		"2:1 in main.dusk",
		"",
		"2 | bar",
		"  | ^^^",
		"error: unexpected `bar`",
	}, "\n")
	assert.Equal(t, want, out)
}

type bracketStyle struct{ plainStyle }

func (bracketStyle) Severity(_ Severity, text string) string { return "[" + text + "]" }

func TestRenderWithStyle(t *testing.T) {
	src := source.New("s.dusk", "x")
	r := NewRenderer(WithStyle(bracketStyle{}))
	out, err := r.Render(Block{Span: src.Whole(), Message: "m", Severity: Warning})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "[warning]: m"))

	assert.NotPanics(t, func() {
		_, _ = NewRenderer(WithStyle(ColorStyle())).Render(Block{Span: src.Whole(), Message: "m"})
	})
}
