package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/dusk/dusk/lexer"
	"github.com/dhamidi/dusk/dusk/parser"
	"github.com/dhamidi/dusk/dusk/token"
)

func load(t *testing.T) *Grammar {
	t.Helper()
	g, err := Load()
	require.NoError(t, err)
	return g
}

func TestVerify(t *testing.T) {
	g := load(t)
	assert.NoError(t, g.Verify(Start))
	assert.True(t, g.Has("Expression"))
	assert.True(t, g.Has("identifier"))
	assert.Contains(t, g.Productions(), "FunctionDecl")
}

func TestVerifyRejectsUnreachable(t *testing.T) {
	g, err := Parse("t.ebnf", strings.NewReader(`A = "a" . B = "b" .`))
	require.NoError(t, err)
	assert.Error(t, g.Verify("A"))
}

func TestLiteralsLexAsOneToken(t *testing.T) {
	for _, lit := range load(t).Literals() {
		toks := lexer.Tokenize(lit)
		require.Len(t, toks, 2, lit)
		assert.NotEqual(t, token.Error, toks[0].Kind, lit)
		assert.Equal(t, len(lit), toks[0].Span.End, lit)
	}
}

func TestLexicalProductions(t *testing.T) {
	g := load(t)
	tests := []struct {
		production string
		text       string
		want       bool
	}{
		{"identifier", "snake_case_1", true},
		{"identifier", "_", true},
		{"identifier", "9lives", false},
		{"integer", "1_000", true},
		{"integer", "1.5", false},
		{"float", "1.5", true},
		{"float", "1._5", true},
		{"float", "1.", false},
		{"string", `""`, true},
		{"string", `"a\"b"`, true},
		{"string", `"héllo"`, true},
		{"string", `"open`, false},
	}
	for _, tt := range tests {
		t.Run(tt.production+" "+tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Match(tt.production, tt.text))
		})
	}
}

func TestLexerAgreesWithLexicalProductions(t *testing.T) {
	g := load(t)
	input := `fn f(x_1: Int) { let s = "a\tb"; x_1 = 1_000 + 2.5_0; }`
	terms, err := Tokenize(input)
	require.NoError(t, err)
	for _, term := range terms {
		if term.Class != "" {
			assert.True(t, g.Match(term.Class, term.Text), "%s %q", term.Class, term.Text)
		}
	}
}

// Inputs that parse without diagnostics are exactly the ones the grammar
// derives.
func TestParserAgreesWithGrammar(t *testing.T) {
	g := load(t)
	tests := []struct {
		input string
		valid bool
	}{
		{"module m;", true},
		{"#![doc]", true},
		{"struct S { a: B, }", true},
		{"fn f(a: Int,) -> (Int, Bool) { let x, y = 1, 2; x += y; }", true},
		{"fn decl();", true},
		{"a.b::c(1)(2);", true},
		{"not -x or y and z < 1 == true;", true},
		{"();", true},
		{"(1,);", true},
		{"x: y: z;", true},
		{`f(a: 1, b: "s");`, true},
		{";;", true},
		{"#[test] #[x] fn t();", true},
		{"a = b = c;", true},
		{"1 +;", false},
		{"let = 1;", false},
		{"a b;", false},
		{"struct S { , }", false},
		{"#[a]", false},
		{"fn f() -> Int", false},
		{"f(1 2);", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, diags := parser.ParseFile("t.dusk", tt.input)
			err := g.Accepts(Start, tt.input)
			if tt.valid {
				assert.Empty(t, diags)
				assert.NoError(t, err)
			} else {
				assert.NotEmpty(t, diags)
				assert.ErrorIs(t, err, ErrRejected)
			}
		})
	}
}

func TestRecognizeReportsPosition(t *testing.T) {
	g := load(t)
	err := g.Accepts(Start, "let x = 1 2;")
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), `offset 10: unexpected "2"`)

	err = g.Accepts(Start, "let x = 1")
	assert.ErrorContains(t, err, "unexpected end of input")

	err = g.Accepts(Start, "let x = @;")
	assert.ErrorContains(t, err, `unrecognized "@"`)
}
