package ast

import (
	"strconv"
	"strings"
)

var unaryOpNames = [...]string{
	Not:      "Not",
	Positive: "Positive",
	Negative: "Negative",
}

func (op UnaryOp) String() string { return unaryOpNames[op] }

var binaryOpNames = [...]string{
	Add:          "Add",
	Subtract:     "Subtract",
	Multiply:     "Multiply",
	Divide:       "Divide",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	Equal:        "Equal",
	NotEqual:     "NotEqual",
	And:          "And",
	Or:           "Or",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

var assignOpNames = [...]string{
	Set:            "Set",
	AddAssign:      "AddAssign",
	SubtractAssign: "SubtractAssign",
	MultiplyAssign: "MultiplyAssign",
	DivideAssign:   "DivideAssign",
}

func (op AssignOp) String() string { return assignOpNames[op] }

func (k AssignKind) String() string {
	if k == ScopeAssign {
		return "Scope"
	}
	return "Value"
}

func (k PathKind) String() string {
	if k == Scope {
		return "Scope"
	}
	return "Member"
}

// Name returns the node type name, e.g. "Binary".
func Name(n Node) string {
	switch n.(type) {
	case *Error:
		return "Error"
	case *Bool:
		return "Bool"
	case *String:
		return "String"
	case *Integer:
		return "Integer"
	case *Float:
		return "Float"
	case *Ident:
		return "Ident"
	case *Path:
		return "Path"
	case *Unary:
		return "Unary"
	case *Binary:
		return "Binary"
	case *Call:
		return "Call"
	case *Pair:
		return "Pair"
	case *Sequence:
		return "Sequence"
	case *Assignment:
		return "Assignment"
	case *Module:
		return "Module"
	case *Struct:
		return "Struct"
	case *Function:
		return "Function"
	case *Block:
		return "Block"
	case *Metadata:
		return "Metadata"
	case *Expression:
		return "Expression"
	}
	return "Unknown"
}

// Attributes returns the non-child data of a node in display form. Literal
// text is quoted.
func Attributes(n Node) []string {
	switch n := n.(type) {
	case *Bool:
		return []string{strconv.FormatBool(n.Value)}
	case *String:
		return []string{strconv.Quote(n.Text)}
	case *Integer:
		return []string{strconv.Quote(n.Text)}
	case *Float:
		return []string{strconv.Quote(n.Text)}
	case *Ident:
		return []string{strconv.Quote(n.Name)}
	case *Path:
		return []string{n.Kind.String()}
	case *Unary:
		return []string{n.Op.String()}
	case *Binary:
		return []string{n.Op.String()}
	case *Assignment:
		return []string{n.Kind.String(), n.Op.String()}
	case *Metadata:
		if n.Inner {
			return []string{"Inner"}
		}
	}
	return nil
}

// Children returns the direct children of n in source order. Absent
// optional children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch n := n.(type) {
	case *Path:
		add(n.Target)
		if n.Name != nil {
			add(n.Name)
		}
	case *Unary:
		add(n.Operand)
	case *Binary:
		add(n.Left)
		add(n.Right)
	case *Call:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *Pair:
		add(n.Key)
		add(n.Value)
	case *Sequence:
		for _, e := range n.Elements {
			add(e)
		}
	case *Assignment:
		add(n.Target)
		add(n.Value)
	case *Module:
		if n.Name != nil {
			add(n.Name)
		}
	case *Struct:
		if n.Name != nil {
			add(n.Name)
		}
		for _, f := range n.Fields {
			add(f)
		}
	case *Function:
		if n.Name != nil {
			add(n.Name)
		}
		for _, p := range n.Params {
			add(p)
		}
		add(n.Return)
		if n.Body != nil {
			add(n.Body)
		}
	case *Block:
		for _, i := range n.Items {
			add(i)
		}
	case *Metadata:
		add(n.Meta)
		add(n.Subject)
	case *Expression:
		add(n.Expr)
	}
	return out
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the node just visited.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}

// Debug renders n as a compact constructor expression, such as
// Binary(Add, Integer("1"), Integer("2")).
func Debug(n Node) string {
	var sb strings.Builder
	writeDebug(&sb, n)
	return sb.String()
}

func writeDebug(sb *strings.Builder, n Node) {
	sb.WriteString(Name(n))
	attrs := Attributes(n)
	children := Children(n)
	if _, isErr := n.(*Error); isErr {
		return
	}
	sb.WriteByte('(')
	for i, a := range attrs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a)
	}
	for i, c := range children {
		if i > 0 || len(attrs) > 0 {
			sb.WriteString(", ")
		}
		writeDebug(sb, c)
	}
	sb.WriteByte(')')
}

// DebugItems renders each item on its own line.
func DebugItems(items []Item) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = Debug(item)
	}
	return strings.Join(lines, "\n")
}

// Errors collects every Error node below the given items.
func Errors(items []Item) []*Error {
	var errs []*Error
	for _, item := range items {
		Walk(item, func(n Node) bool {
			if e, ok := n.(*Error); ok {
				errs = append(errs, e)
			}
			return true
		})
	}
	return errs
}
