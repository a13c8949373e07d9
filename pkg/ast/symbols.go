package ast

import (
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/types"
)

// Variable describes one declared variable: a global, a parameter or a
// local. It is owned by the list of its declaring scope.
type Variable struct {
	Name    string
	Type    types.Type
	IsArray bool
	Tok     lexer.Token // defining lexeme
}

// Function describes one declared function. The parameter list is fixed once
// the header has been parsed.
type Function struct {
	Name   string
	Return types.Type
	Params []*Variable
	Locals []*Variable
	Body   *Block
	Tok    lexer.Token
}

// Param finds a parameter by exact name.
func (f *Function) Param(name string) *Variable {
	for _, p := range f.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Local finds a local variable by exact name.
func (f *Function) Local(name string) *Variable {
	for _, v := range f.Locals {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// DeclKind classifies an entry of the declaration record.
type DeclKind int

const (
	DeclGlobal DeclKind = iota
	DeclFunction
	DeclParameter
	DeclLocal
)

func (k DeclKind) String() string {
	switch k {
	case DeclGlobal:
		return "global variable"
	case DeclFunction:
		return "function"
	case DeclParameter:
		return "parameter"
	case DeclLocal:
		return "local variable"
	}
	return "unknown"
}

// Decl records one declared identifier for the declaration report, in
// declaration order.
type Decl struct {
	Kind DeclKind
	Name string
	Tok  lexer.Token
}

// Program is the whole-compilation-unit symbol table: the global variable
// list, the function list in declaration order, and the ordered record of
// every declared identifier.
type Program struct {
	Globals   []*Variable
	Functions []*Function
	Decls     []Decl
}

// Global finds a global variable by exact name, by linear scan.
func (p *Program) Global(name string) *Variable {
	for _, v := range p.Globals {
		if v.Name == name {
			return v
		}
	}
	return nil
}
