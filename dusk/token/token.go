// Package token defines the lexical vocabulary of Dusk.
package token

import "github.com/dhamidi/dusk/dusk/source"

type Kind uint8

const (
	EOF Kind = iota
	Error

	// Symbols
	LeftBrace    // {
	RightBrace   // }
	LeftParen    // (
	RightParen   // )
	LeftBracket  // [
	RightBracket // ]
	Comma        // ,
	Dot          // .
	Colon        // :
	ColonColon   // ::
	Semicolon    // ;
	Arrow        // ->
	FatArrow     // =>
	Hash         // #
	Bang         // !
	Assign       // =
	PlusAssign   // +=
	MinusAssign  // -=
	StarAssign   // *=
	SlashAssign  // /=

	// Operators
	Plus
	Minus
	Star
	Slash
	Less
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual

	// Keywords
	And
	Or
	Not
	Struct
	Fn
	Let
	Module
	True
	False

	// Literals
	Ident
	Integer
	Float
	String

	kindCount
)

// Count is the number of token kinds.
const Count = int(kindCount)

var kindNames = [kindCount]string{
	EOF:          "EOF",
	Error:        "Error",
	LeftBrace:    "{",
	RightBrace:   "}",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBracket:  "[",
	RightBracket: "]",
	Comma:        ",",
	Dot:          ".",
	Colon:        ":",
	ColonColon:   "::",
	Semicolon:    ";",
	Arrow:        "->",
	FatArrow:     "=>",
	Hash:         "#",
	Bang:         "!",
	Assign:       "=",
	PlusAssign:   "+=",
	MinusAssign:  "-=",
	StarAssign:   "*=",
	SlashAssign:  "/=",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	Equal:        "==",
	NotEqual:     "!=",
	And:          "and",
	Or:           "or",
	Not:          "not",
	Struct:       "struct",
	Fn:           "fn",
	Let:          "let",
	Module:       "module",
	True:         "true",
	False:        "false",
	Ident:        "Ident",
	Integer:      "Integer",
	Float:        "Float",
	String:       "String",
}

// String returns the source spelling of fixed tokens and the kind name of
// the rest.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Unknown"
}

var descriptions [kindCount]string

func init() {
	for k := Kind(0); k < kindCount; k++ {
		switch {
		case k == EOF:
			descriptions[k] = "end of input"
		case k == Error:
			descriptions[k] = "an unrecognized token"
		case k == Ident:
			descriptions[k] = "an identifier"
		case k == Integer:
			descriptions[k] = "an integer"
		case k == Float:
			descriptions[k] = "a float"
		case k == String:
			descriptions[k] = "a string"
		case k.In(Keyword):
			descriptions[k] = "the keyword `" + kindNames[k] + "`"
		default:
			descriptions[k] = "`" + kindNames[k] + "`"
		}
	}
}

// Describe returns the phrase used for k in diagnostics, such as
// "the keyword `and`" or "an identifier".
func (k Kind) Describe() string {
	if k < kindCount {
		return descriptions[k]
	}
	return "an unknown token"
}

var keywords = map[string]Kind{
	"and":    And,
	"or":     Or,
	"not":    Not,
	"struct": Struct,
	"fn":     Fn,
	"let":    Let,
	"module": Module,
	"true":   True,
	"false":  False,
}

// Lookup returns the keyword kind for ident, or Ident.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// Spanned is a token kind together with the bytes it covers. It is a small
// value and is copied freely for lookahead and backtracking.
type Spanned struct {
	Kind Kind
	Span source.PartialSpan
}

func (t Spanned) Is(k Kind) bool { return t.Kind == k }

func (t Spanned) In(c Category) bool { return t.Kind.In(c) }

// Text returns the token's spelling in src.
func (t Spanned) Text(src *source.Source) string {
	return t.Span.Slice(src)
}
