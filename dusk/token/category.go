package token

import (
	"math/bits"
	"strings"
)

// Category is a named group of kinds sharing a syntactic role. Categories
// are bit flags so one kind can belong to several.
type Category uint32

const (
	Symbol Category = 1 << iota
	OpeningBracket
	ClosingBracket
	Path
	CompoundOperator
	BinaryOperator
	UnaryOperator
	SumOperator
	ProductOperator
	ComparisonOperator
	Keyword
	ItemKeyword
	Literal
	FirstTokenOfExpression
	// Statement holds the tokens recovery never skips over.
	Statement
)

var categoryNames = []string{
	"Symbol",
	"OpeningBracket",
	"ClosingBracket",
	"Path",
	"CompoundOperator",
	"BinaryOperator",
	"UnaryOperator",
	"SumOperator",
	"ProductOperator",
	"ComparisonOperator",
	"Keyword",
	"ItemKeyword",
	"Literal",
	"FirstTokenOfExpression",
	"Statement",
}

func (c Category) String() string {
	var names []string
	for c != 0 {
		i := bits.TrailingZeros32(uint32(c))
		names = append(names, categoryNames[i])
		c &^= 1 << i
	}
	return strings.Join(names, "|")
}

var membership = [kindCount]Category{
	EOF:   Statement,
	Error: 0,

	LeftBrace:    Symbol | OpeningBracket,
	RightBrace:   Symbol | ClosingBracket | Statement,
	LeftParen:    Symbol | OpeningBracket | FirstTokenOfExpression,
	RightParen:   Symbol | ClosingBracket | Statement,
	LeftBracket:  Symbol | OpeningBracket,
	RightBracket: Symbol | ClosingBracket | Statement,
	Comma:        Symbol,
	Dot:          Symbol | Path,
	Colon:        Symbol,
	ColonColon:   Symbol | Path,
	Semicolon:    Symbol | Statement,
	Arrow:        Symbol,
	FatArrow:     Symbol,
	Hash:         Symbol,
	Bang:         Symbol,
	Assign:       Symbol,
	PlusAssign:   Symbol | CompoundOperator,
	MinusAssign:  Symbol | CompoundOperator,
	StarAssign:   Symbol | CompoundOperator,
	SlashAssign:  Symbol | CompoundOperator,

	Plus:         BinaryOperator | SumOperator | UnaryOperator | FirstTokenOfExpression,
	Minus:        BinaryOperator | SumOperator | UnaryOperator | FirstTokenOfExpression,
	Star:         BinaryOperator | ProductOperator,
	Slash:        BinaryOperator | ProductOperator,
	Less:         BinaryOperator | ComparisonOperator,
	LessEqual:    BinaryOperator | ComparisonOperator,
	Greater:      BinaryOperator | ComparisonOperator,
	GreaterEqual: BinaryOperator | ComparisonOperator,
	Equal:        BinaryOperator | ComparisonOperator,
	NotEqual:     BinaryOperator | ComparisonOperator,

	And:    Keyword | BinaryOperator,
	Or:     Keyword | BinaryOperator,
	Not:    Keyword | UnaryOperator | FirstTokenOfExpression,
	Struct: Keyword | ItemKeyword,
	Fn:     Keyword | ItemKeyword,
	Let:    Keyword | ItemKeyword,
	Module: Keyword | ItemKeyword,
	True:   Keyword | Literal | FirstTokenOfExpression,
	False:  Keyword | Literal | FirstTokenOfExpression,

	Ident:   FirstTokenOfExpression,
	Integer: Literal | FirstTokenOfExpression,
	Float:   Literal | FirstTokenOfExpression,
	String:  Literal | FirstTokenOfExpression,
}

// In reports whether k belongs to any of the categories in c.
func (k Kind) In(c Category) bool {
	return k < kindCount && membership[k]&c != 0
}

// Categories returns every category k belongs to.
func (k Kind) Categories() Category {
	if k >= kindCount {
		return 0
	}
	return membership[k]
}

// Set is a set of kinds, used for follow sets during recovery.
type Set uint64

// NewSet returns the set holding kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s Set) Has(k Kind) bool { return k < kindCount && s&(1<<k) != 0 }

func (s Set) With(kinds ...Kind) Set { return s | NewSet(kinds...) }

func (s Set) Union(other Set) Set { return s | other }

func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }

// Kinds lists the members in declaration order.
func (s Set) Kinds() []Kind {
	var kinds []Kind
	for k := Kind(0); k < kindCount; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
