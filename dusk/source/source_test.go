package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanValidation(t *testing.T) {
	src := New("test.dusk", "let é = 1;")

	tests := []struct {
		name       string
		start, end int
		want       error
	}{
		{"whole", 0, src.Len(), nil},
		{"empty at end", src.Len(), src.Len(), nil},
		{"inside multibyte", 5, 6, ErrNotBoundary},
		{"negative", -1, 2, ErrOutOfRange},
		{"past end", 0, src.Len() + 1, ErrOutOfRange},
		{"inverted", 3, 1, ErrInvertedSpan},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.Span(tt.start, tt.end)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCursorPosition(t *testing.T) {
	src := New("test.dusk", "ab\n\tcé\nx")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{2, Position{1, 3}},
		{3, Position{2, 1}},
		{4, Position{2, 2}},
		{5, Position{2, 3}},
		{7, Position{2, 4}},
		{8, Position{3, 1}},
		{9, Position{3, 2}},
	}
	for _, tt := range tests {
		c, err := src.Cursor(tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.Position(), "offset %d", tt.offset)
	}
}

func TestUnionAndContains(t *testing.T) {
	src := New("a.dusk", "foo bar baz")
	a, err := src.Span(0, 3)
	require.NoError(t, err)
	b, err := src.Span(8, 11)
	require.NoError(t, err)

	u, err := a.Union(b)
	require.NoError(t, err)
	assert.Equal(t, "foo bar baz", u.Text())
	assert.True(t, u.Contains(a))
	assert.True(t, u.Contains(b))
	assert.False(t, a.Contains(u))

	other := New("b.dusk", "foo bar baz")
	c, err := other.Span(0, 3)
	require.NoError(t, err)
	_, err = a.Union(c)
	assert.ErrorIs(t, err, ErrDifferentSource)
	assert.False(t, u.Contains(c))
}

func TestSpanFromCursors(t *testing.T) {
	src := New("a.dusk", "hello")
	start, _ := src.Cursor(1)
	end, _ := src.Cursor(4)

	span, err := SpanFromCursors(start, end)
	require.NoError(t, err)
	assert.Equal(t, "ell", span.Text())

	_, err = SpanFromCursors(end, start)
	assert.ErrorIs(t, err, ErrInvertedSpan)
}

func TestLines(t *testing.T) {
	src := New("a.dusk", "one\ntwo\nthree\n")

	tests := []struct {
		name       string
		start, end int
		want       string
		numbers    []int
	}{
		{"inside a line", 5, 6, "two", []int{2}},
		{"ends at newline", 4, 8, "two", []int{2}},
		{"crosses a newline", 5, 10, "two\nthree", []int{2, 3}},
		{"empty at line start", 4, 4, "two", []int{2}},
		{"empty at end", 14, 14, "", []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := src.Span(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, span.Lines().Text())

			var numbers []int
			for _, line := range span.AnnotatedLines() {
				numbers = append(numbers, line.Number)
			}
			assert.Equal(t, tt.numbers, numbers)
		})
	}
}

func TestPartialUpgrade(t *testing.T) {
	src := New("a.dusk", "né")
	p := NewPartial(0, 3)
	span, err := p.Upgrade(src)
	require.NoError(t, err)
	assert.Equal(t, "né", span.Text())
	assert.Equal(t, p, span.Partial())

	_, err = NewPartial(0, 2).Upgrade(src)
	assert.ErrorIs(t, err, ErrNotBoundary)

	assert.Equal(t, NewPartial(0, 3), NewPartial(1, 2).Union(NewPartial(0, 3)))
}
