// Package ast defines the abstract syntax tree for the teaching language.
// Every node keeps a back-reference to its originating lexeme; expression
// nodes additionally carry the type and array flag the analyzer derives.
package ast

import (
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/types"
)

// Node is the base interface for all AST nodes
type Node interface {
	Lexeme() lexer.Token
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface for all expression nodes. An expression can stand
// alone as a statement.
type Expr interface {
	Stmt
	ResultType() types.Type
	Array() bool
	exprNode()
}

// ExprBase carries the annotations common to every expression node. Type is
// Unresolved until the analyzer has visited the enclosing function.
type ExprBase struct {
	Tok     lexer.Token
	Type    types.Type
	IsArray bool
}

func (b *ExprBase) Lexeme() lexer.Token     { return b.Tok }
func (b *ExprBase) ResultType() types.Type  { return b.Type }
func (b *ExprBase) Array() bool             { return b.IsArray }
func (b *ExprBase) stmtNode()               {}
func (b *ExprBase) exprNode()               {}

// StmtBase carries the originating lexeme of a statement node.
type StmtBase struct {
	Tok lexer.Token
}

func (b *StmtBase) Lexeme() lexer.Token { return b.Tok }
func (b *StmtBase) stmtNode()           {}

// Literal is an integer, real, char or string literal; the kind is the
// lexical kind of Tok.
type Literal struct {
	ExprBase
}

// Ident is a bare identifier naming a parameter, local or global.
type Ident struct {
	ExprBase
}

// Unary is a prefix operator applied to an operand; the operator is Tok.
// Prefix ++ and -- restrict the operand to a single lvalue, and postfix
// ++/-- reuse this node with the lvalue as operand.
type Unary struct {
	ExprBase
	Operand Expr
}

// Cast converts its operand to Target; Tok is the TYPE lexeme.
type Cast struct {
	ExprBase
	Target  types.Type
	Operand Expr
}

// Binary is a binary operator application; the operator is Tok. Assignment
// and compound assignment are Binary nodes whose Left is an lvalue.
type Binary struct {
	ExprBase
	Left  Expr
	Right Expr
}

// Ternary is cond ? then : else.
type Ternary struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

// Index is a single-dimension array access; Tok names the indexed variable
// (only a bare identifier can be indexed).
type Index struct {
	ExprBase
	Index Expr
}

// Call is a function call; Tok names the callee.
type Call struct {
	ExprBase
	Args []Expr
}

// Break is a break statement.
type Break struct {
	StmtBase
}

// Continue is a continue statement.
type Continue struct {
	StmtBase
}

// Return is a return statement; Expr is nil for a bare return.
type Return struct {
	StmtBase
	Expr Expr
}

// If is a conditional with an optional else branch; Else is nil when absent.
// An else-if chain nests as a one-statement else block.
type If struct {
	StmtBase
	Cond Expr
	Then *Block
	Else *Block
}

// For is a for loop; any of Init, Cond and Post may be nil.
type For struct {
	StmtBase
	Init Expr
	Cond Expr
	Post Expr
	Body *Block
}

// While is a while loop.
type While struct {
	StmtBase
	Cond Expr
	Body *Block
}

// DoWhile is a do-while loop.
type DoWhile struct {
	StmtBase
	Body *Block
	Cond Expr
}

// Block is an ordered statement sequence; insertion order is execution order.
type Block struct {
	StmtBase
	Stmts []Stmt
}
