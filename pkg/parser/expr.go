package parser

import (
	"github.com/minicc-lang/minicc/pkg/ast"
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/types"
)

// binaryLevels lists the binary operators from lowest to highest precedence.
// Each level folds left over one-higher-precedence operands.
var binaryLevels = [][]lexer.TokenType{
	{lexer.TokenOr},
	{lexer.TokenAnd},
	{lexer.TokenPipe},
	{lexer.TokenAmpersand},
	{lexer.TokenEq, lexer.TokenNe},
	{lexer.TokenLt, lexer.TokenLe, lexer.TokenGt, lexer.TokenGe},
	{lexer.TokenPlus, lexer.TokenMinus},
	{lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent},
}

// parseExpression parses a full expression. The ternary operator sits below
// every binary level and folds left: each `? :` takes the previously built
// tree as its condition.
func (p *Parser) parseExpression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	for p.curTokenIs(lexer.TokenQuestion) {
		op := p.curToken
		p.nextToken()

		then, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TokenColon, ":"); err != nil {
			return nil, err
		}
		els, err := p.parseBinary(0)
		if err != nil {
			return nil, err
		}
		left = &ast.Ternary{ExprBase: ast.ExprBase{Tok: op}, Cond: left, Then: then, Else: els}
	}
	return left, nil
}

func levelHas(ops []lexer.TokenType, t lexer.TokenType) bool {
	for _, op := range ops {
		if op == t {
			return true
		}
	}
	return false
}

// parseBinary parses one precedence level, left-associatively.
func (p *Parser) parseBinary(level int) (ast.Expr, error) {
	if level == len(binaryLevels) {
		return p.parsePrimary()
	}

	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}

	for levelHas(binaryLevels[level], p.curToken.Type) {
		op := p.curToken
		p.nextToken()

		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{ExprBase: ast.ExprBase{Tok: op}, Left: left, Right: right}
	}
	return left, nil
}

// parsePrimary parses the highest level: literals, calls, lvalues, prefix
// operators, casts and parenthesized expressions.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.curToken

	switch tok.Type {
	case lexer.TokenInt, lexer.TokenReal, lexer.TokenCharLit, lexer.TokenString:
		p.nextToken()
		return &ast.Literal{ExprBase: ast.ExprBase{Tok: tok}}, nil

	case lexer.TokenIdent:
		p.nextToken()
		if p.curTokenIs(lexer.TokenLParen) {
			return p.parseCall(tok)
		}
		return p.parseLValue(tok)

	case lexer.TokenAmpersand, lexer.TokenStar, lexer.TokenPlus,
		lexer.TokenMinus, lexer.TokenTilde, lexer.TokenNot:
		p.nextToken()
		operand, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{ExprBase: ast.ExprBase{Tok: tok}, Operand: operand}, nil

	case lexer.TokenLParen:
		p.nextToken()
		if p.curToken.IsType() {
			return p.parseCast()
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TokenRParen, ")"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TokenIncrement, lexer.TokenDecrement:
		// Prefix increment/decrement of a single lvalue operand.
		p.nextToken()
		if !p.curTokenIs(lexer.TokenIdent) {
			return nil, p.expected("identifier")
		}
		name := p.curToken
		p.nextToken()
		operand, err := p.parseLValueTarget(name)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{ExprBase: ast.ExprBase{Tok: tok}, Operand: operand}, nil
	}

	return nil, p.expected("identifier (within expression)")
}

// parseCall parses the argument list of a call to name; the '(' is current.
func (p *Parser) parseCall(name lexer.Token) (ast.Expr, error) {
	call := &ast.Call{ExprBase: ast.ExprBase{Tok: name}}
	p.nextToken() // consume '('

	if !p.curTokenIs(lexer.TokenRParen) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		for p.curTokenIs(lexer.TokenComma) {
			p.nextToken()
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
	}

	if err := p.expect(lexer.TokenRParen, ")"); err != nil {
		return nil, err
	}
	return call, nil
}

// parseCast parses `TYPE ) expr` after the opening '(' has identified a
// cast. The operand is a full expression, like every other prefix form.
func (p *Parser) parseCast() (ast.Expr, error) {
	typeTok := p.curToken
	target, err := types.FromKeyword(typeTok.Literal)
	if err != nil {
		return nil, err
	}
	p.nextToken()

	if err := p.expect(lexer.TokenRParen, ")"); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Cast{ExprBase: ast.ExprBase{Tok: typeTok}, Target: target, Operand: operand}, nil
}

// parseLValueTarget parses the optional single `[index]` after a bare
// identifier, yielding the assignable target node.
func (p *Parser) parseLValueTarget(name lexer.Token) (ast.Expr, error) {
	if !p.curTokenIs(lexer.TokenLBracket) {
		return &ast.Ident{ExprBase: ast.ExprBase{Tok: name}}, nil
	}
	p.nextToken()

	index, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TokenRBracket, "]"); err != nil {
		return nil, err
	}
	return &ast.Index{ExprBase: ast.ExprBase{Tok: name}, Index: index}, nil
}

// parseLValue parses the lvalue path after a bare identifier: an optional
// single index, then an optional assignment with a full-expression
// right-hand side, or a postfix ++/--. Assignment resolves here, at the
// primary level, so it binds tighter than every binary operator and only a
// bare (optionally indexed) identifier can be a target.
func (p *Parser) parseLValue(name lexer.Token) (ast.Expr, error) {
	target, err := p.parseLValueTarget(name)
	if err != nil {
		return nil, err
	}

	switch p.curToken.Type {
	case lexer.TokenAssign, lexer.TokenStarAssign, lexer.TokenSlashAssign,
		lexer.TokenPlusAssign, lexer.TokenMinusAssign:
		op := p.curToken
		p.nextToken()
		rhs, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{ExprBase: ast.ExprBase{Tok: op}, Left: target, Right: rhs}, nil

	case lexer.TokenIncrement, lexer.TokenDecrement:
		op := p.curToken
		p.nextToken()
		return &ast.Unary{ExprBase: ast.ExprBase{Tok: op}, Operand: target}, nil
	}

	return target, nil
}
