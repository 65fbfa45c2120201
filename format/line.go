package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/dusk/dusk/ast"
)

// LineEncoder writes one tab separated line per top-level declaration and
// per diagnostic, for use with grep, cut and awk:
//
//	fn	add	4:1	a,b
//	error	7:3	expected `;`, found `}`
type LineEncoder struct {
	w   io.Writer
	doc *Document
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc *Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	if e.doc == nil || e.doc.Source == nil {
		return nil, fmt.Errorf("encode: no document")
	}
	var sb strings.Builder
	for _, item := range e.doc.Items {
		kind, name, extra := e.describe(item)
		pos, err := e.position(item)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", kind, name, pos, extra)
	}
	for _, d := range e.doc.Diagnostics {
		start, _ := d.Span.Cursors()
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", d.Severity, start.Position(), d.Message())
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) position(n ast.Node) (string, error) {
	c, err := e.doc.Source.Cursor(n.Span().Start)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", ast.Name(n), err)
	}
	return c.Position().String(), nil
}

// describe returns the keyword, declared name and a summary of the parts
// of an item. Missing parts are written as "-".
func (e *LineEncoder) describe(item ast.Item) (kind, name, extra string) {
	kind, name, extra = "expr", "-", "-"
	switch n := item.(type) {
	case *ast.Metadata:
		if n.Subject == nil {
			return "meta", "-", "-"
		}
		kind, name, extra = e.describe(n.Subject)
		return "#" + kind, name, extra
	case *ast.Module:
		kind, name = "module", identName(n.Name)
	case *ast.Struct:
		kind, name, extra = "struct", identName(n.Name), keys(n.Fields)
	case *ast.Function:
		kind, name, extra = "fn", identName(n.Name), keys(n.Params)
	case *ast.Assignment:
		kind = "let"
		if id, ok := n.Target.(*ast.Ident); ok {
			name = id.Name
		}
	case *ast.Error:
		kind = "error"
	}
	return kind, name, extra
}

func identName(id *ast.Ident) string {
	if id == nil {
		return "-"
	}
	return id.Name
}

// keys lists the names on the left of `name: Type` pairs.
func keys(fields []ast.Expr) string {
	var names []string
	for _, f := range fields {
		if pair, ok := f.(*ast.Pair); ok {
			if id, ok := pair.Key.(*ast.Ident); ok {
				names = append(names, id.Name)
			}
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
