// Package sema validates declarations and derives expression types for a
// parsed program.
//
// Declaration conflicts are fatal: the first one is returned and nothing
// further is checked. Type derivation instead realizes failures as the Error
// type on the offending node and keeps going, so the whole program is always
// fully annotated; the first offending lexeme becomes the returned
// diagnostic. Re-running Analyze over an annotated AST derives the same
// types again.
package sema

import (
	"fmt"

	"github.com/minicc-lang/minicc/pkg/ast"
	"github.com/minicc-lang/minicc/pkg/diag"
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/types"
)

// Analyzer walks one program. The function currently being checked and the
// slice of functions visible to it are explicit state, never shared.
type Analyzer struct {
	prog     *ast.Program
	fn       *ast.Function
	visible  []*ast.Function
	firstErr *diag.TypeError
}

// Analyze validates all declarations, then derives the type of every
// expression of every function body. It returns the first declaration
// conflict, or else the first type error, or nil.
func Analyze(prog *ast.Program) error {
	a := &Analyzer{prog: prog}

	if err := a.checkDeclarations(); err != nil {
		return err
	}

	for i, fn := range prog.Functions {
		a.fn = fn
		// A call resolves only against functions declared no later than
		// the caller; a function's own entry exists before its body, so
		// recursion resolves.
		a.visible = prog.Functions[:i+1]
		a.checkBlock(fn.Body)
	}

	if a.firstErr != nil {
		return a.firstErr
	}
	return nil
}

// errorf records the root-cause diagnostic. Only the first one survives;
// later sites are already poisoned by a propagated Error.
func (a *Analyzer) errorf(tok lexer.Token, format string, args ...interface{}) {
	if a.firstErr == nil {
		a.firstErr = &diag.TypeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
	}
}

// checkDeclarations validates globals, then each function in declaration
// order. Every failure is fatal.
func (a *Analyzer) checkDeclarations() error {
	for i, v := range a.prog.Globals {
		if v.Type == types.Void {
			return &diag.DeclarationError{Tok: v.Tok, Msg: "variables cannot have type void"}
		}
		for _, prev := range a.prog.Globals[:i] {
			if prev.Name == v.Name {
				return &diag.DeclarationError{Tok: v.Tok, Msg: "variable redeclared"}
			}
		}
	}

	for k, fn := range a.prog.Functions {
		for i, v := range fn.Locals {
			if v.Type == types.Void {
				return &diag.DeclarationError{Tok: v.Tok, Msg: "variables cannot have type void"}
			}
			for _, prev := range fn.Locals[:i] {
				if prev.Name == v.Name {
					return &diag.DeclarationError{Tok: v.Tok, Msg: "variable redeclared"}
				}
			}
			if fn.Param(v.Name) != nil {
				return &diag.DeclarationError{Tok: v.Tok, Msg: "variable cannot have the same name as a parameter"}
			}
		}

		for i, p := range fn.Params {
			for _, prev := range fn.Params[:i] {
				if prev.Name == p.Name {
					return &diag.DeclarationError{Tok: p.Tok, Msg: "parameter redeclared"}
				}
			}
		}

		for _, prev := range a.prog.Functions[:k] {
			if prev.Name == fn.Name {
				return &diag.DeclarationError{Tok: fn.Tok, Msg: "function with the same name already exists"}
			}
		}
	}
	return nil
}

func (a *Analyzer) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		a.checkStmt(s)
	}
}

// checkStmt triggers derivation on every expression a statement owns.
func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		a.checkBlock(n)
	case *ast.Return:
		if n.Expr != nil {
			a.checkExpr(n.Expr)
		}
	case *ast.If:
		a.checkExpr(n.Cond)
		a.checkBlock(n.Then)
		a.checkBlock(n.Else)
	case *ast.For:
		if n.Init != nil {
			a.checkExpr(n.Init)
		}
		if n.Cond != nil {
			a.checkExpr(n.Cond)
		}
		if n.Post != nil {
			a.checkExpr(n.Post)
		}
		a.checkBlock(n.Body)
	case *ast.While:
		a.checkExpr(n.Cond)
		a.checkBlock(n.Body)
	case *ast.DoWhile:
		a.checkBlock(n.Body)
		a.checkExpr(n.Cond)
	case *ast.Break, *ast.Continue:
		// no owned expressions
	case ast.Expr:
		a.checkExpr(n)
	}
}

// resolve looks a name up against parameters, then locals, then globals.
func (a *Analyzer) resolve(name string) *ast.Variable {
	if v := a.fn.Param(name); v != nil {
		return v
	}
	if v := a.fn.Local(name); v != nil {
		return v
	}
	return a.prog.Global(name)
}

// checkExpr derives e's type and array flag in place.
func (a *Analyzer) checkExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		a.checkLiteral(n)
	case *ast.Ident:
		a.checkIdent(n)
	case *ast.Index:
		a.checkIndex(n)
	case *ast.Unary:
		a.checkUnary(n)
	case *ast.Cast:
		a.checkCast(n)
	case *ast.Binary:
		a.checkBinary(n)
	case *ast.Ternary:
		a.checkTernary(n)
	case *ast.Call:
		a.checkCall(n)
	}
}

func (a *Analyzer) checkLiteral(n *ast.Literal) {
	switch n.Tok.Type {
	case lexer.TokenInt:
		n.Type, n.IsArray = types.Int, false
	case lexer.TokenCharLit:
		n.Type, n.IsArray = types.Char, false
	case lexer.TokenReal:
		n.Type, n.IsArray = types.Float, false
	case lexer.TokenString:
		n.Type, n.IsArray = types.Char, true
	}
}

func (a *Analyzer) checkIdent(n *ast.Ident) {
	v := a.resolve(n.Tok.Literal)
	if v == nil {
		n.Type, n.IsArray = types.Error, false
		a.errorf(n.Tok, "undeclared identifier")
		return
	}
	n.Type, n.IsArray = v.Type, v.IsArray
}

func (a *Analyzer) checkIndex(n *ast.Index) {
	a.checkExpr(n.Index)
	n.IsArray = false

	v := a.resolve(n.Tok.Literal)
	switch {
	case v == nil:
		n.Type = types.Error
		a.errorf(n.Tok, "undeclared identifier")
	case !v.IsArray:
		n.Type = types.Error
		a.errorf(n.Tok, "variable is not an array")
	case n.Index.ResultType() == types.Error:
		n.Type = types.Error
	case n.Index.ResultType() != types.Int || n.Index.Array():
		n.Type = types.Error
		a.errorf(n.Index.Lexeme(), "array index must have type int")
	default:
		n.Type = v.Type
	}
}

func (a *Analyzer) checkUnary(n *ast.Unary) {
	a.checkExpr(n.Operand)
	t, isArray := n.Operand.ResultType(), n.Operand.Array()
	n.IsArray = false

	if t == types.Error {
		n.Type = types.Error
		return
	}

	switch n.Tok.Type {
	case lexer.TokenNot, lexer.TokenTilde:
		if t != types.Int || isArray {
			n.Type = types.Error
			a.errorf(n.Tok, "operand of '%s' must have type int", n.Tok.Literal)
			return
		}
		n.Type = types.Int

	case lexer.TokenPlus, lexer.TokenMinus,
		lexer.TokenIncrement, lexer.TokenDecrement:
		if !t.Numeric() || isArray {
			n.Type = types.Error
			a.errorf(n.Tok, "operand of '%s' must be numeric", n.Tok.Literal)
			return
		}
		n.Type = t

	case lexer.TokenAmpersand, lexer.TokenStar:
		// The language has no pointer types; address-of and dereference
		// pass the operand through unchanged.
		n.Type, n.IsArray = t, isArray
	}
}

func (a *Analyzer) checkCast(n *ast.Cast) {
	a.checkExpr(n.Operand)
	n.IsArray = false

	if n.Operand.ResultType() == types.Error {
		n.Type = types.Error
		return
	}
	n.Type = n.Target
}

func (a *Analyzer) checkBinary(n *ast.Binary) {
	a.checkExpr(n.Left)
	a.checkExpr(n.Right)

	lt, rt := n.Left.ResultType(), n.Right.ResultType()
	la, ra := n.Left.Array(), n.Right.Array()
	n.IsArray = false

	if lt == types.Error || rt == types.Error {
		n.Type = types.Error
		return
	}

	switch n.Tok.Type {
	case lexer.TokenAssign, lexer.TokenStarAssign, lexer.TokenSlashAssign,
		lexer.TokenPlusAssign, lexer.TokenMinusAssign:
		if lt != rt || la != ra {
			n.Type = types.Error
			a.errorf(n.Tok, "mismatched operand types for '%s'", n.Tok.Literal)
			return
		}
		n.Type, n.IsArray = lt, la

	case lexer.TokenAnd, lexer.TokenOr, lexer.TokenAmpersand, lexer.TokenPipe:
		if lt != types.Int || rt != types.Int || la || ra {
			n.Type = types.Error
			a.errorf(n.Tok, "operands of '%s' must have type int", n.Tok.Literal)
			return
		}
		n.Type = types.Int

	case lexer.TokenEq, lexer.TokenNe, lexer.TokenLt, lexer.TokenLe,
		lexer.TokenGt, lexer.TokenGe:
		if lt != rt || la || ra {
			n.Type = types.Error
			a.errorf(n.Tok, "mismatched operand types for '%s'", n.Tok.Literal)
			return
		}
		n.Type = types.Int

	case lexer.TokenPercent:
		if lt != types.Int || rt != types.Int || la || ra {
			n.Type = types.Error
			a.errorf(n.Tok, "operands of '%%' must have type int")
			return
		}
		n.Type = types.Int

	case lexer.TokenPlus, lexer.TokenMinus, lexer.TokenStar, lexer.TokenSlash:
		if lt != rt || !lt.Numeric() || la || ra {
			n.Type = types.Error
			a.errorf(n.Tok, "mismatched operand types for '%s'", n.Tok.Literal)
			return
		}
		n.Type = lt
	}
}

func (a *Analyzer) checkTernary(n *ast.Ternary) {
	a.checkExpr(n.Cond)
	a.checkExpr(n.Then)
	a.checkExpr(n.Else)
	n.IsArray = false

	ct := n.Cond.ResultType()
	tt, et := n.Then.ResultType(), n.Else.ResultType()

	if ct == types.Error || tt == types.Error || et == types.Error {
		n.Type = types.Error
		return
	}
	if ct != types.Int || n.Cond.Array() {
		n.Type = types.Error
		a.errorf(n.Tok, "ternary condition must have type int")
		return
	}
	if tt != et || n.Then.Array() != n.Else.Array() {
		n.Type = types.Error
		a.errorf(n.Tok, "ternary branches must have the same type")
		return
	}
	n.Type, n.IsArray = tt, n.Then.Array()
}

func (a *Analyzer) checkCall(n *ast.Call) {
	argsPoisoned := false
	for _, arg := range n.Args {
		a.checkExpr(arg)
		if arg.ResultType() == types.Error {
			argsPoisoned = true
		}
	}
	n.IsArray = false

	if argsPoisoned {
		n.Type = types.Error
		return
	}

	if ret, ok := a.resolveUserCall(n); ok {
		n.Type = ret
		return
	}
	if ret, ok := resolveBuiltin(n); ok {
		n.Type = ret
		return
	}

	n.Type = types.Error
	a.errorf(n.Tok, "no matching function for call to '%s'", n.Tok.Literal)
}

// resolveUserCall matches the call against visible user functions: same
// name, same parameter count, exact per-parameter type and array-ness. No
// coercion.
func (a *Analyzer) resolveUserCall(n *ast.Call) (types.Type, bool) {
	for _, f := range a.visible {
		if f.Name != n.Tok.Literal || len(f.Params) != len(n.Args) {
			continue
		}
		match := true
		for i, p := range f.Params {
			if p.Type != n.Args[i].ResultType() || p.IsArray != n.Args[i].Array() {
				match = false
				break
			}
		}
		if match {
			return f.Return, true
		}
	}
	return types.Error, false
}
