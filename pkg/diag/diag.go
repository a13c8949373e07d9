// Package diag defines the diagnostic taxonomy shared by the parser and the
// semantic analyzer. Every diagnostic names the source file, line and text of
// the offending lexeme.
package diag

import (
	"fmt"

	"github.com/minicc-lang/minicc/pkg/lexer"
)

// SyntaxError reports an unmet grammar expectation. It is always fatal: the
// parser stops at the first one.
type SyntaxError struct {
	Tok      lexer.Token
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Parser error in file %s line %d at text %s\n\tExpected '%s'",
		e.Tok.File, e.Tok.Line, e.Tok.Literal, e.Expected)
}

// Expectedf builds a SyntaxError for the given token.
func Expectedf(tok lexer.Token, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Tok: tok, Expected: fmt.Sprintf(format, args...)}
}

// NestingError reports that the parser's recursion bound was exceeded.
// Fatal, like any other parse failure.
type NestingError struct {
	Tok lexer.Token
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("Parser error in file %s line %d at text %s\n\texpression too deeply nested",
		e.Tok.File, e.Tok.Line, e.Tok.Literal)
}

// DeclarationError reports an invalid or conflicting declaration. Fatal, one
// per run.
type DeclarationError struct {
	Tok lexer.Token
	Msg string
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("Type checking error in file %s line %d at text %s\n\t%s",
		e.Tok.File, e.Tok.Line, e.Tok.Literal, e.Msg)
}

// TypeError reports the root cause of a failed type derivation: an
// unresolved name or call, or incompatible operands.
type TypeError struct {
	Tok lexer.Token
	Msg string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Type checking error in file %s line %d at text %s\n\t%s",
		e.Tok.File, e.Tok.Line, e.Tok.Literal, e.Msg)
}
