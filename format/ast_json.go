package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/source"
)

type ASTJSONEncoder struct {
	w   io.Writer
	doc *Document
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(doc *Document) error {
	e.doc = doc
	if err := write(e.w, e); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, "\n")
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	data, err := documentData(e.doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// The same shapes back the YAML encoder.
type astDocument struct {
	File        string          `json:"file" yaml:"file"`
	Items       []*astJSONNode  `json:"items" yaml:"items"`
	Diagnostics []astDiagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

type astJSONNode struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Value    string         `json:"value,omitempty" yaml:"value,omitempty"`
	Flags    []string       `json:"flags,omitempty" yaml:"flags,omitempty"`
	Span     astJSONSpan    `json:"span" yaml:"span"`
	Children []*astJSONNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start" yaml:"start"`
	End   astJSONPosition `json:"end" yaml:"end"`
}

type astJSONPosition struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type astDiagnostic struct {
	Severity string      `json:"severity" yaml:"severity"`
	Message  string      `json:"message" yaml:"message"`
	Span     astJSONSpan `json:"span" yaml:"span"`
}

func documentData(doc *Document) (*astDocument, error) {
	if doc == nil || doc.Source == nil {
		return nil, fmt.Errorf("encode: no document")
	}
	data := &astDocument{File: doc.Source.Name(), Items: []*astJSONNode{}}
	for _, item := range doc.Items {
		n, err := nodeToJSON(doc.Source, item)
		if err != nil {
			return nil, err
		}
		data.Items = append(data.Items, n)
	}
	for _, d := range doc.Diagnostics {
		data.Diagnostics = append(data.Diagnostics, astDiagnostic{
			Severity: d.Severity.String(),
			Message:  d.Message(),
			Span:     spanToJSON(d.Span),
		})
	}
	return data, nil
}

func nodeToJSON(src *source.Source, n ast.Node) (*astJSONNode, error) {
	span, err := n.Span().Upgrade(src)
	if err != nil {
		return nil, fmt.Errorf("encode %s at %s: %w", ast.Name(n), n.Span(), err)
	}
	jn := &astJSONNode{
		Kind: ast.Name(n),
		Span: spanToJSON(span),
	}

	switch n := n.(type) {
	case *ast.Ident:
		jn.Value = n.Name
	case *ast.Integer:
		jn.Value = n.Text
	case *ast.Float:
		jn.Value = n.Text
	case *ast.String:
		jn.Value = n.Text
	case *ast.Bool:
		jn.Value = strconv.FormatBool(n.Value)
	default:
		jn.Flags = ast.Attributes(n)
	}

	for _, child := range ast.Children(n) {
		jc, err := nodeToJSON(src, child)
		if err != nil {
			return nil, err
		}
		jn.Children = append(jn.Children, jc)
	}
	return jn, nil
}

func spanToJSON(span source.Span) astJSONSpan {
	start, end := span.Cursors()
	return astJSONSpan{
		Start: positionToJSON(start),
		End:   positionToJSON(end),
	}
}

func positionToJSON(c source.Cursor) astJSONPosition {
	pos := c.Position()
	return astJSONPosition{Offset: c.Offset(), Line: pos.Line, Column: pos.Column}
}
