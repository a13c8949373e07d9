// Package types defines the semantic type model of the teaching language.
package types

import "fmt"

// Type is the semantic type of a declaration or expression. The zero value
// is Unresolved: expressions carry it until the analyzer has run.
type Type int

const (
	Unresolved Type = iota
	Int
	Char
	Float
	Void
	// Error marks an expression whose type could not be derived. It
	// propagates upward so a whole subtree is poisoned by one mismatch.
	Error
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Char:
		return "char"
	case Float:
		return "float"
	case Void:
		return "void"
	case Unresolved:
		return "unresolved"
	}
	return "error"
}

// Numeric reports whether t is an arithmetic operand type.
func (t Type) Numeric() bool {
	return t == Int || t == Char || t == Float
}

// keywords maps base-type keyword spellings to semantic types.
var keywords = map[string]Type{
	"int":   Int,
	"char":  Char,
	"float": Float,
	"void":  Void,
}

// FromKeyword maps a TYPE lexeme's text to a semantic type by exact-string
// lookup. Unrecognized text means the lexer handed over a token it should
// not have classified as a type: an internal error, not a user diagnostic.
func FromKeyword(text string) (Type, error) {
	if t, ok := keywords[text]; ok {
		return t, nil
	}
	return Error, fmt.Errorf("internal: unknown base type keyword %q", text)
}
