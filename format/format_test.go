package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/dusk/dusk/parser"
)

func parse(text string) *Document {
	p := parser.New(text, parser.WithFile("t.dusk"))
	items := p.Parse()
	return &Document{Source: p.Source(), Items: items, Diagnostics: p.Diagnostics()}
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf).Encode(parse("1 + 2;\nlet s = \"x\";")))
	want := strings.Join([]string{
		"Expression 0..6",
		"  Binary Add 0..5",
		`    Integer "1" 0..1`,
		`    Integer "2" 4..5`,
		"Assignment Scope Set 7..19",
		`  Ident "s" 11..12`,
		`  String "\"x\"" 15..18`,
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(parse("f(x)\n;\n1 +;")))

	var got struct {
		File  string `json:"file"`
		Items []struct {
			Kind     string `json:"kind"`
			Children []struct {
				Kind     string `json:"kind"`
				Children []struct {
					Kind  string `json:"kind"`
					Value string `json:"value"`
				} `json:"children"`
			} `json:"children"`
		} `json:"items"`
		Diagnostics []struct {
			Severity string `json:"severity"`
			Message  string `json:"message"`
			Span     struct {
				Start struct{ Offset, Line, Column int } `json:"start"`
			} `json:"span"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "t.dusk", got.File)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Expression", got.Items[0].Kind)
	assert.Equal(t, "Call", got.Items[0].Children[0].Kind)
	assert.Equal(t, "x", got.Items[0].Children[0].Children[1].Value)

	require.Len(t, got.Diagnostics, 1)
	d := got.Diagnostics[0]
	assert.Equal(t, "error", d.Severity)
	assert.Equal(t, "expected an expression, found `;`", d.Message)
	assert.Equal(t, 3, d.Span.Start.Line)
	assert.Equal(t, 4, d.Span.Start.Column)
	assert.Equal(t, 10, d.Span.Start.Offset)
}

func TestYAMLMatchesJSONShape(t *testing.T) {
	doc := parse("#[test] fn f(a: Int) { a; }")
	want, err := documentData(doc)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewYAMLEncoder(&buf).Encode(doc))
	assert.True(t, strings.HasPrefix(buf.String(), "file: t.dusk\n"))

	var got astDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, &got)
}

func TestLine(t *testing.T) {
	text := strings.Join([]string{
		"module util;",
		"struct P { x: Int, y: Int }",
		"#[inline] fn add(a: Int) -> Int { a; }",
		"let p = P;",
		"1 +;",
	}, "\n")
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(parse(text)))
	want := strings.Join([]string{
		"module\tutil\t1:1\t-",
		"struct\tP\t2:1\tx,y",
		"#fn\tadd\t3:1\ta",
		"let\tp\t4:1\t-",
		"expr\t-\t5:1\t-",
		"error\t5:4\texpected an expression, found `;`",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeWithoutDocument(t *testing.T) {
	_, err := NewASTJSONEncoder(&bytes.Buffer{}).MarshalText()
	assert.Error(t, err)
}
