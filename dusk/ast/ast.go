// Package ast declares the syntax tree produced by the Dusk parser.
//
// The set of node types is closed. Every node owns its children; nothing in
// a tree is shared. Parse failures are represented in place by Error nodes
// so that the surrounding structure survives.
package ast

import "github.com/dhamidi/dusk/dusk/source"

type Node interface {
	Span() source.PartialSpan
	node()
}

type Expr interface {
	Node
	expr()
}

type Item interface {
	Node
	item()
}

// Base is embedded in every node and records where it was parsed from.
type Base struct {
	Loc source.PartialSpan
}

// At returns a Base located at span.
func At(span source.PartialSpan) Base { return Base{Loc: span} }

func (b Base) Span() source.PartialSpan { return b.Loc }
func (Base) node()                      {}

// Error marks input that could not be parsed. It may stand in for an
// expression or an item.
type Error struct {
	Base
}

type Bool struct {
	Base
	Value bool
}

// String keeps the literal as written, quotes and escapes included.
type String struct {
	Base
	Text string
}

type Integer struct {
	Base
	Text string
}

type Float struct {
	Base
	Text string
}

type Ident struct {
	Base
	Name string
}

type PathKind uint8

const (
	Member PathKind = iota // a.b
	Scope                  // a::b
)

// Path accesses Name inside Target.
type Path struct {
	Base
	Kind   PathKind
	Target Expr
	Name   *Ident
}

type UnaryOp uint8

const (
	Not UnaryOp = iota
	Positive
	Negative
)

type Unary struct {
	Base
	Op      UnaryOp
	Operand Expr
}

type BinaryOp uint8

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Less
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual
	And
	Or
)

type Binary struct {
	Base
	Op    BinaryOp
	Left  Expr
	Right Expr
}

type Call struct {
	Base
	Callee Expr
	Args   []Expr
}

// Pair is `key: value`, used for annotations and struct fields.
type Pair struct {
	Base
	Key   Expr
	Value Expr
}

// Sequence is a comma separated list; `()` is the empty sequence.
type Sequence struct {
	Base
	Elements []Expr
}

type AssignKind uint8

const (
	// ValueAssign updates an existing binding: `x = 1`.
	ValueAssign AssignKind = iota
	// ScopeAssign introduces a binding: `let x = 1`.
	ScopeAssign
)

type AssignOp uint8

const (
	Set AssignOp = iota
	AddAssign
	SubtractAssign
	MultiplyAssign
	DivideAssign
)

// Assignment is an expression, and also an item when introduced by `let`.
type Assignment struct {
	Base
	Kind   AssignKind
	Op     AssignOp
	Target Expr
	Value  Expr
}

// Module declares a child module: `module name;`.
type Module struct {
	Base
	Name *Ident
}

type Struct struct {
	Base
	Name   *Ident
	Fields []Expr
}

// Function has a nil Body when it is only declared (`fn f();`) and a nil
// Return when no return type is written.
type Function struct {
	Base
	Name   *Ident
	Params []Expr
	Return Expr
	Body   *Block
}

type Block struct {
	Base
	Items []Item
}

// Metadata attaches Meta to Subject (`#[meta] item`). Inner metadata
// (`#![meta]`) applies to the enclosing module and has no Subject.
type Metadata struct {
	Base
	Inner   bool
	Meta    Expr
	Subject Item
}

// Expression is an expression used as a statement: `expr;`.
type Expression struct {
	Base
	Expr Expr
}

func (*Error) expr()      {}
func (*Bool) expr()       {}
func (*String) expr()     {}
func (*Integer) expr()    {}
func (*Float) expr()      {}
func (*Ident) expr()      {}
func (*Path) expr()       {}
func (*Unary) expr()      {}
func (*Binary) expr()     {}
func (*Call) expr()       {}
func (*Pair) expr()       {}
func (*Sequence) expr()   {}
func (*Assignment) expr() {}

func (*Error) item()      {}
func (*Assignment) item() {}
func (*Module) item()     {}
func (*Struct) item()     {}
func (*Function) item()   {}
func (*Metadata) item()   {}
func (*Expression) item() {}
