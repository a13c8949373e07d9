package parser

import (
	"github.com/minicc-lang/minicc/pkg/ast"
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/types"
)

// parseStatements parses statements into block until the closing '}' of the
// enclosing scope. Local variable declarations are legal only here, as
// direct block children.
func (p *Parser) parseStatements(fn *ast.Function, block *ast.Block) error {
	for !p.curTokenIs(lexer.TokenRBrace) {
		if p.curTokenIs(lexer.TokenEOF) {
			return p.expected("}")
		}

		if p.curToken.IsType() {
			if err := p.parseLocalDeclaration(fn); err != nil {
				return err
			}
			continue
		}

		stmt, err := p.parseStatement(fn)
		if err != nil {
			return err
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	return nil
}

// parseLocalDeclaration parses `TYPE IDENT` followed by the shared
// variable-declaration grammar, appending to fn's local list.
func (p *Parser) parseLocalDeclaration(fn *ast.Function) error {
	typeTok := p.curToken
	p.nextToken()

	if !p.curTokenIs(lexer.TokenIdent) {
		return p.expected("identifier")
	}
	base, err := types.FromKeyword(typeTok.Literal)
	if err != nil {
		return err
	}
	v := &ast.Variable{Name: p.curToken.Literal, Type: base, Tok: p.curToken}
	fn.Locals = append(fn.Locals, v)
	p.record(ast.DeclLocal, v.Name, v.Tok)
	p.nextToken()

	return p.parseVariableRest(ast.DeclLocal, fn, base, v)
}

// parseStatement parses one statement, branching on the leading token. An
// empty statement `;` produces no node (nil, nil).
func (p *Parser) parseStatement(fn *ast.Function) (ast.Stmt, error) {
	tok := p.curToken

	switch tok.Type {
	case lexer.TokenSemicolon:
		p.nextToken()
		return nil, nil

	case lexer.TokenBreak:
		p.nextToken()
		if err := p.expect(lexer.TokenSemicolon, ";"); err != nil {
			return nil, err
		}
		return &ast.Break{StmtBase: ast.StmtBase{Tok: tok}}, nil

	case lexer.TokenContinue:
		p.nextToken()
		if err := p.expect(lexer.TokenSemicolon, ";"); err != nil {
			return nil, err
		}
		return &ast.Continue{StmtBase: ast.StmtBase{Tok: tok}}, nil

	case lexer.TokenReturn:
		p.nextToken()
		ret := &ast.Return{StmtBase: ast.StmtBase{Tok: tok}}
		if p.curTokenIs(lexer.TokenSemicolon) {
			p.nextToken()
			return ret, nil
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		ret.Expr = expr
		if err := p.expect(lexer.TokenSemicolon, ";"); err != nil {
			return nil, err
		}
		return ret, nil

	case lexer.TokenIf:
		p.nextToken()
		return p.parseIf(fn, tok)

	case lexer.TokenFor:
		p.nextToken()
		return p.parseFor(fn, tok)

	case lexer.TokenWhile:
		p.nextToken()
		return p.parseWhile(fn, tok)

	case lexer.TokenDo:
		p.nextToken()
		return p.parseDoWhile(fn, tok)
	}

	// Expression statement.
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenSemicolon, ";"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseStatementOrBlock accepts either a brace-delimited statement sequence
// or a single statement collected as a one-element sequence. Declarations
// are not statements, so a single-statement branch cannot declare.
func (p *Parser) parseStatementOrBlock(fn *ast.Function) (*ast.Block, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	block := &ast.Block{StmtBase: ast.StmtBase{Tok: p.curToken}}

	if p.curTokenIs(lexer.TokenLBrace) {
		p.nextToken()
		if err := p.parseStatements(fn, block); err != nil {
			return nil, err
		}
		if !p.curTokenIs(lexer.TokenRBrace) {
			return nil, p.expected("}")
		}
		p.nextToken()
		return block, nil
	}

	stmt, err := p.parseStatement(fn)
	if err != nil {
		return nil, err
	}
	if stmt != nil {
		block.Stmts = append(block.Stmts, stmt)
	}
	return block, nil
}

func (p *Parser) parseIf(fn *ast.Function, tok lexer.Token) (ast.Stmt, error) {
	if err := p.expect(lexer.TokenLParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenRParen, ")"); err != nil {
		return nil, err
	}

	then, err := p.parseStatementOrBlock(fn)
	if err != nil {
		return nil, err
	}

	node := &ast.If{StmtBase: ast.StmtBase{Tok: tok}, Cond: cond, Then: then}
	if p.curTokenIs(lexer.TokenElse) {
		p.nextToken()
		node.Else, err = p.parseStatementOrBlock(fn)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// parseFor parses `for ( [expr] ; [expr] ; [expr] ) statement-or-block`;
// absent clauses stay nil.
func (p *Parser) parseFor(fn *ast.Function, tok lexer.Token) (ast.Stmt, error) {
	if err := p.expect(lexer.TokenLParen, "("); err != nil {
		return nil, err
	}

	node := &ast.For{StmtBase: ast.StmtBase{Tok: tok}}
	var err error

	if !p.curTokenIs(lexer.TokenSemicolon) {
		if node.Init, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenSemicolon, ";"); err != nil {
		return nil, err
	}

	if !p.curTokenIs(lexer.TokenSemicolon) {
		if node.Cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenSemicolon, ";"); err != nil {
		return nil, err
	}

	if !p.curTokenIs(lexer.TokenRParen) {
		if node.Post, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(lexer.TokenRParen, ")"); err != nil {
		return nil, err
	}

	if node.Body, err = p.parseStatementOrBlock(fn); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseWhile(fn *ast.Function, tok lexer.Token) (ast.Stmt, error) {
	if err := p.expect(lexer.TokenLParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenRParen, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatementOrBlock(fn)
	if err != nil {
		return nil, err
	}
	return &ast.While{StmtBase: ast.StmtBase{Tok: tok}, Cond: cond, Body: body}, nil
}

// parseDoWhile parses `do statement-or-block while ( expr ) ;`. The trailing
// terminator is required.
func (p *Parser) parseDoWhile(fn *ast.Function, tok lexer.Token) (ast.Stmt, error) {
	body, err := p.parseStatementOrBlock(fn)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenWhile, "while"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenLParen, "("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenRParen, ")"); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenSemicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.DoWhile{StmtBase: ast.StmtBase{Tok: tok}, Body: body, Cond: cond}, nil
}
