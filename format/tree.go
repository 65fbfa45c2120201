package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/dusk/dusk/ast"
)

// TreeEncoder prints one node per line, children indented below their
// parent, each followed by its byte span:
//
//	Expression 0..10
//	  Binary Add 0..9
//	    Integer "1" 0..1
type TreeEncoder struct {
	w   io.Writer
	doc *Document
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	if e.doc == nil {
		return nil, nil
	}
	var sb strings.Builder
	for _, item := range e.doc.Items {
		writeTree(&sb, item, 0)
	}
	return []byte(sb.String()), nil
}

// Tree renders a single node and its descendants.
func Tree(n ast.Node) string {
	var sb strings.Builder
	writeTree(&sb, n, 0)
	return sb.String()
}

func writeTree(sb *strings.Builder, n ast.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(ast.Name(n))
	for _, attr := range ast.Attributes(n) {
		sb.WriteByte(' ')
		sb.WriteString(attr)
	}
	fmt.Fprintf(sb, " %s\n", n.Span())
	for _, child := range ast.Children(n) {
		writeTree(sb, child, depth+1)
	}
}
