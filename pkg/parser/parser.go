// Package parser implements a recursive descent parser for the teaching
// language. It builds the AST and the program symbol tables in one pass and
// stops at the first syntax error.
package parser

import (
	"github.com/minicc-lang/minicc/pkg/ast"
	"github.com/minicc-lang/minicc/pkg/diag"
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/types"
)

// maxNestingDepth bounds recursive descent on adversarial nesting. Exceeding
// it is reported as a dedicated diagnostic instead of overflowing the stack.
const maxNestingDepth = 200

// Parser parses a token stream into an annotated AST and symbol tables.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	prog      *ast.Program
	depth     int
}

// New creates a new Parser for the given lexer
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:    l,
		prog: &ast.Program{},
	}
	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expected builds the fatal syntax diagnostic for the current token.
func (p *Parser) expected(what string) error {
	return diag.Expectedf(p.curToken, "%s", what)
}

// expect consumes the current token if it has the wanted type and fails
// otherwise.
func (p *Parser) expect(t lexer.TokenType, what string) error {
	if !p.curTokenIs(t) {
		return p.expected(what)
	}
	p.nextToken()
	return nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return &diag.NestingError{Tok: p.curToken}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// record appends one identifier to the ordered declaration record.
func (p *Parser) record(kind ast.DeclKind, name string, tok lexer.Token) {
	p.prog.Decls = append(p.prog.Decls, ast.Decl{Kind: kind, Name: name, Tok: tok})
}

// ParseProgram parses top-level declarations until end of stream.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	for !p.curTokenIs(lexer.TokenEOF) {
		if !p.curToken.IsType() {
			return nil, p.expected("function or global declaration")
		}
		typeTok := p.curToken
		p.nextToken()

		if !p.curTokenIs(lexer.TokenIdent) {
			return nil, p.expected("identifier")
		}
		nameTok := p.curToken
		p.nextToken()

		base, err := types.FromKeyword(typeTok.Literal)
		if err != nil {
			return nil, err
		}

		if p.curTokenIs(lexer.TokenLParen) {
			// Function declaration. The table entry is recorded before the
			// body is parsed, so calls inside the body resolve to it.
			p.record(ast.DeclFunction, nameTok.Literal, nameTok)
			fn := &ast.Function{Name: nameTok.Literal, Return: base, Tok: nameTok}
			p.prog.Functions = append(p.prog.Functions, fn)
			p.nextToken() // consume '('

			if err := p.parseParameters(fn); err != nil {
				return nil, err
			}
			if err := p.parseFunctionBody(fn); err != nil {
				return nil, err
			}
			continue
		}

		// Global variable declaration.
		v := &ast.Variable{Name: nameTok.Literal, Type: base, Tok: nameTok}
		p.record(ast.DeclGlobal, nameTok.Literal, nameTok)
		p.prog.Globals = append(p.prog.Globals, v)
		if err := p.parseVariableRest(ast.DeclGlobal, nil, base, v); err != nil {
			return nil, err
		}
	}
	return p.prog, nil
}

// parseVariableRest handles the shared variable-declaration grammar after
// the first name of the list: `;` ends it, `,` IDENT declares a sibling of
// the same base type, and `[` INT `]` marks the immediately preceding
// variable as a one-dimensional array (the bound is consumed, not retained).
func (p *Parser) parseVariableRest(kind ast.DeclKind, fn *ast.Function, base types.Type, last *ast.Variable) error {
	switch p.curToken.Type {
	case lexer.TokenSemicolon:
		p.nextToken()
		return nil

	case lexer.TokenComma:
		p.nextToken()
		if !p.curTokenIs(lexer.TokenIdent) {
			return p.expected("identifier")
		}
		v := &ast.Variable{Name: p.curToken.Literal, Type: base, Tok: p.curToken}
		if kind == ast.DeclGlobal {
			p.prog.Globals = append(p.prog.Globals, v)
		} else {
			fn.Locals = append(fn.Locals, v)
		}
		p.record(kind, v.Name, v.Tok)
		p.nextToken()
		return p.parseVariableRest(kind, fn, base, v)

	case lexer.TokenLBracket:
		last.IsArray = true
		p.nextToken()
		if !p.curTokenIs(lexer.TokenInt) {
			return p.expected("integer literal")
		}
		p.nextToken()
		if !p.curTokenIs(lexer.TokenRBracket) {
			return p.expected("]")
		}
		p.nextToken()
		return p.parseVariableRest(kind, fn, base, last)
	}

	return p.expected(";")
}

// parseParameters parses `TYPE IDENT []? (, TYPE IDENT []?)*` up to and
// including the closing ')'.
func (p *Parser) parseParameters(fn *ast.Function) error {
	for !p.curTokenIs(lexer.TokenRParen) {
		if !p.curToken.IsType() {
			return p.expected("type")
		}
		base, err := types.FromKeyword(p.curToken.Literal)
		if err != nil {
			return err
		}
		p.nextToken()

		if !p.curTokenIs(lexer.TokenIdent) {
			return p.expected("identifier")
		}
		v := &ast.Variable{Name: p.curToken.Literal, Type: base, Tok: p.curToken}
		fn.Params = append(fn.Params, v)
		p.record(ast.DeclParameter, v.Name, v.Tok)
		p.nextToken()

		if p.curTokenIs(lexer.TokenLBracket) {
			// unsized array parameter
			v.IsArray = true
			p.nextToken()
			if !p.curTokenIs(lexer.TokenRBracket) {
				return p.expected("]")
			}
			p.nextToken()
		}

		if p.curTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.curTokenIs(lexer.TokenRParen) {
			return p.expected(")")
		}
	}
	p.nextToken() // consume ')'
	return nil
}

// parseFunctionBody parses the brace-delimited statement sequence of fn.
func (p *Parser) parseFunctionBody(fn *ast.Function) error {
	if !p.curTokenIs(lexer.TokenLBrace) {
		return p.expected("{")
	}
	block := &ast.Block{StmtBase: ast.StmtBase{Tok: p.curToken}}
	p.nextToken()

	if err := p.parseStatements(fn, block); err != nil {
		return err
	}

	if !p.curTokenIs(lexer.TokenRBrace) {
		return p.expected("}")
	}
	p.nextToken()
	fn.Body = block
	return nil
}
