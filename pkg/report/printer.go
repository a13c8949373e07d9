// Package report writes the post-analysis listings: one line per declared
// identifier, and one line per top-level expression statement with its
// derived type.
package report

import (
	"fmt"
	"io"

	"github.com/minicc-lang/minicc/pkg/ast"
)

// Printer writes reports for a program
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintDeclarations writes the declaration report, in declaration order.
func (p *Printer) PrintDeclarations(prog *ast.Program) {
	for _, d := range prog.Decls {
		fmt.Fprintf(p.w, "File %s Line %d: %s %s\n", d.Tok.File, d.Tok.Line, d.Kind, d.Name)
	}
}

// PrintTypes writes the type report: the derived type of every top-level
// expression statement of every function body. Return and control-flow
// statements carry no type and are skipped.
func (p *Printer) PrintTypes(prog *ast.Program) {
	for _, fn := range prog.Functions {
		if fn.Body == nil {
			continue
		}
		for _, s := range fn.Body.Stmts {
			e, ok := s.(ast.Expr)
			if !ok {
				continue
			}
			suffix := ""
			if e.Array() {
				suffix = "[]"
			}
			tok := e.Lexeme()
			fmt.Fprintf(p.w, "File %s Line %d: expression has type %s%s\n",
				tok.File, tok.Line, e.ResultType(), suffix)
		}
	}
}
