package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhamidi/dusk/dusk/source"
)

func span(start, end int) Base { return At(source.NewPartial(start, end)) }

func TestDebug(t *testing.T) {
	// 1 + f(x, y)
	tree := &Binary{
		Base: span(0, 11),
		Op:   Add,
		Left: &Integer{Base: span(0, 1), Text: "1"},
		Right: &Call{
			Base:   span(4, 11),
			Callee: &Ident{Base: span(4, 5), Name: "f"},
			Args: []Expr{
				&Ident{Base: span(6, 7), Name: "x"},
				&Error{Base: span(9, 10)},
			},
		},
	}
	assert.Equal(t, `Binary(Add, Integer("1"), Call(Ident("f"), Ident("x"), Error))`, Debug(tree))
	assert.Equal(t, "Sequence()", Debug(&Sequence{}))
}

func TestChildrenSkipsAbsentParts(t *testing.T) {
	fn := &Function{
		Base: span(0, 8),
		Name: &Ident{Base: span(3, 4), Name: "f"},
	}
	assert.Len(t, Children(fn), 1)
	assert.Equal(t, `Function(Ident("f"))`, Debug(fn))

	meta := &Metadata{Inner: true, Meta: &Ident{Name: "test"}}
	assert.Equal(t, `Metadata(Inner, Ident("test"))`, Debug(meta))
}

func TestWalkAndErrors(t *testing.T) {
	items := []Item{
		&Expression{Expr: &Unary{Op: Negative, Operand: &Error{Base: span(1, 2)}}},
		&Error{Base: span(3, 4)},
	}

	var names []string
	for _, item := range items {
		Walk(item, func(n Node) bool {
			names = append(names, Name(n))
			return true
		})
	}
	assert.Equal(t, []string{"Expression", "Unary", "Error", "Error"}, names)

	errs := Errors(items)
	if assert.Len(t, errs, 2) {
		assert.Equal(t, source.NewPartial(1, 2), errs[0].Span())
	}
}
