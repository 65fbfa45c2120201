package parser

import (
	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/token"
)

// Precedence orders how tightly operators bind. Higher binds tighter.
type Precedence uint8

const (
	PrecStart Precedence = iota
	PrecStatement
	PrecSequence
	PrecPair
	PrecConditional
	PrecOr
	PrecAnd
	PrecComparison
	PrecSum
	PrecProduct
	PrecPrefix
	PrecPostfix
	PrecCall
)

var precedenceNames = [...]string{
	PrecStart:       "Start",
	PrecStatement:   "Statement",
	PrecSequence:    "Sequence",
	PrecPair:        "Pair",
	PrecConditional: "Conditional",
	PrecOr:          "Or",
	PrecAnd:         "And",
	PrecComparison:  "Comparison",
	PrecSum:         "Sum",
	PrecProduct:     "Product",
	PrecPrefix:      "Prefix",
	PrecPostfix:     "Postfix",
	PrecCall:        "Call",
}

func (p Precedence) String() string { return precedenceNames[p] }

type Associativity uint8

const (
	Left Associativity = iota
	Right
)

type infixFn func(p *Parser, left ast.Expr, op token.Spanned) ast.Expr

type infixRule struct {
	prec  Precedence
	assoc Associativity
	parse infixFn
}

// operand returns the minimum precedence for the right operand. Lowering it
// by one for right associative operators lets an equal operator on the
// right bind first.
func (r infixRule) operand() Precedence {
	if r.assoc == Right {
		return r.prec - 1
	}
	return r.prec
}

var infixRules [token.Count]infixRule

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:         ast.Add,
	token.Minus:        ast.Subtract,
	token.Star:         ast.Multiply,
	token.Slash:        ast.Divide,
	token.Less:         ast.Less,
	token.LessEqual:    ast.LessEqual,
	token.Greater:      ast.Greater,
	token.GreaterEqual: ast.GreaterEqual,
	token.Equal:        ast.Equal,
	token.NotEqual:     ast.NotEqual,
	token.And:          ast.And,
	token.Or:           ast.Or,
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Assign:      ast.Set,
	token.PlusAssign:  ast.AddAssign,
	token.MinusAssign: ast.SubtractAssign,
	token.StarAssign:  ast.MultiplyAssign,
	token.SlashAssign: ast.DivideAssign,
}

var unaryOps = map[token.Kind]ast.UnaryOp{
	token.Not:   ast.Not,
	token.Plus:  ast.Positive,
	token.Minus: ast.Negative,
}

// The table refers to parser methods, so it is filled in init to avoid an
// initialization cycle.
func init() {
	for kind := range assignOps {
		infixRules[kind] = infixRule{PrecStatement, Right, (*Parser).parseAssignment}
	}
	infixRules[token.Comma] = infixRule{PrecSequence, Left, (*Parser).parseSequence}
	infixRules[token.Colon] = infixRule{PrecPair, Right, (*Parser).parsePair}
	infixRules[token.Or] = infixRule{PrecOr, Left, (*Parser).parseBinary}
	infixRules[token.And] = infixRule{PrecAnd, Left, (*Parser).parseBinary}
	for kind := range binaryOps {
		switch {
		case kind.In(token.ComparisonOperator):
			infixRules[kind] = infixRule{PrecComparison, Left, (*Parser).parseBinary}
		case kind.In(token.SumOperator):
			infixRules[kind] = infixRule{PrecSum, Left, (*Parser).parseBinary}
		case kind.In(token.ProductOperator):
			infixRules[kind] = infixRule{PrecProduct, Left, (*Parser).parseBinary}
		}
	}
	infixRules[token.Dot] = infixRule{PrecPostfix, Left, (*Parser).parsePath}
	infixRules[token.ColonColon] = infixRule{PrecPostfix, Left, (*Parser).parsePath}
	infixRules[token.LeftParen] = infixRule{PrecCall, Left, (*Parser).parseCall}

	expressionFollow = token.NewSet(token.Semicolon, token.EOF, token.RightBrace)
	for k := token.Kind(0); int(k) < token.Count; k++ {
		if k.In(token.FirstTokenOfExpression | token.ItemKeyword) {
			expressionFollow = expressionFollow.With(k)
		}
	}
	expressionFollow = expressionFollow.With(token.Hash)
}

// expressionFollow holds the tokens that may follow an expression
// statement, used when a `;` has to be inserted.
var expressionFollow token.Set

// InfixPrecedence reports the binding power of kind as an infix operator.
func InfixPrecedence(kind token.Kind) (Precedence, Associativity, bool) {
	r := infixRules[kind]
	return r.prec, r.assoc, r.parse != nil
}
