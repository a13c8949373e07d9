package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent   // main, foo, x
	TokenInt     // 42
	TokenReal    // 3.14
	TokenCharLit // 'a'
	TokenString  // "hello"

	// Type keywords
	TokenTypeInt   // int
	TokenTypeChar  // char
	TokenTypeFloat // float
	TokenTypeVoid  // void

	// Keywords
	TokenIf       // if
	TokenElse     // else
	TokenWhile    // while
	TokenDo       // do
	TokenFor      // for
	TokenBreak    // break
	TokenContinue // continue
	TokenReturn   // return

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenPipe      // |
	TokenTilde     // ~
	TokenQuestion  // ?
	TokenColon     // :

	// Compound assignment operators
	TokenPlusAssign  // +=
	TokenMinusAssign // -=
	TokenStarAssign  // *=
	TokenSlashAssign // /=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
)

var tokenNames = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenIllegal:     "ILLEGAL",
	TokenIdent:       "IDENT",
	TokenInt:         "INT",
	TokenReal:        "REAL",
	TokenCharLit:     "CHAR",
	TokenString:      "STRING",
	TokenTypeInt:     "int",
	TokenTypeChar:    "char",
	TokenTypeFloat:   "float",
	TokenTypeVoid:    "void",
	TokenIf:          "if",
	TokenElse:        "else",
	TokenWhile:       "while",
	TokenDo:          "do",
	TokenFor:         "for",
	TokenBreak:       "break",
	TokenContinue:    "continue",
	TokenReturn:      "return",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenSlash:       "/",
	TokenPercent:     "%",
	TokenAssign:      "=",
	TokenEq:          "==",
	TokenNe:          "!=",
	TokenLt:          "<",
	TokenLe:          "<=",
	TokenGt:          ">",
	TokenGe:          ">=",
	TokenAnd:         "&&",
	TokenOr:          "||",
	TokenNot:         "!",
	TokenAmpersand:   "&",
	TokenPipe:        "|",
	TokenTilde:       "~",
	TokenQuestion:    "?",
	TokenColon:       ":",
	TokenPlusAssign:  "+=",
	TokenMinusAssign: "-=",
	TokenStarAssign:  "*=",
	TokenSlashAssign: "/=",
	TokenIncrement:   "++",
	TokenDecrement:   "--",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenSemicolon:   ";",
	TokenComma:       ",",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token. File and Line identify the source
// position every downstream diagnostic refers back to.
type Token struct {
	Type    TokenType
	Literal string
	File    string
	Line    int
	Column  int
}

// IsType reports whether the token is a base-type keyword.
func (t Token) IsType() bool {
	switch t.Type {
	case TokenTypeInt, TokenTypeChar, TokenTypeFloat, TokenTypeVoid:
		return true
	}
	return false
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"int":      TokenTypeInt,
	"char":     TokenTypeChar,
	"float":    TokenTypeFloat,
	"void":     TokenTypeVoid,
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"do":       TokenDo,
	"for":      TokenFor,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
