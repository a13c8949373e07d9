package sema

import (
	"os"
	"testing"

	"github.com/minicc-lang/minicc/pkg/ast"
	"github.com/minicc-lang/minicc/pkg/diag"
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/parser"
	"github.com/minicc-lang/minicc/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestSpec represents a test case from check.yaml
type TestSpec struct {
	Name  string   `yaml:"name"`
	Input string   `yaml:"input"`
	Types []string `yaml:"types,omitempty"`
	Error string   `yaml:"error,omitempty"`
}

// TestFile represents the check.yaml file structure
type TestFile struct {
	Tests []TestSpec `yaml:"tests"`
}

func TestCheckYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/check.yaml")
	require.NoError(t, err, "failed to read check.yaml")

	var testFile TestFile
	require.NoError(t, yaml.Unmarshal(data, &testFile), "failed to parse check.yaml")

	for _, tc := range testFile.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			prog, err := analyze(t, tc.Input)

			if tc.Error == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.Error)
			}

			var got []string
			for _, fn := range prog.Functions {
				for _, s := range fn.Body.Stmts {
					e, ok := s.(ast.Expr)
					if !ok {
						continue
					}
					repr := e.ResultType().String()
					if e.Array() {
						repr += "[]"
					}
					got = append(got, repr)
				}
			}
			assert.Equal(t, tc.Types, got)
		})
	}
}

func analyze(t *testing.T, input string) (*ast.Program, error) {
	t.Helper()
	l := lexer.New("test.c", input)
	p := parser.New(l)
	prog, err := p.ParseProgram()
	require.NoError(t, err, "parse must succeed")
	return prog, Analyze(prog)
}

// bodyExprs returns the top-level expression statements of the first
// function body.
func bodyExprs(prog *ast.Program) []ast.Expr {
	var out []ast.Expr
	for _, s := range prog.Functions[0].Body.Stmts {
		if e, ok := s.(ast.Expr); ok {
			out = append(out, e)
		}
	}
	return out
}

func TestDuplicateGlobal(t *testing.T) {
	_, err := analyze(t, "int x;\nint x;")
	require.Error(t, err)

	var declErr *diag.DeclarationError
	require.ErrorAs(t, err, &declErr)
	assert.Equal(t, "variable redeclared", declErr.Msg)
	assert.Equal(t, 2, declErr.Tok.Line, "diagnostic must reference the second declaration")
	assert.Equal(t, "x", declErr.Tok.Literal)
}

func TestDeclarationConflicts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"void global", "void x;", "variables cannot have type void"},
		{"void local", "void f() { void x; }", "variables cannot have type void"},
		{"duplicate local", "void f() { int a; int a; }", "variable redeclared"},
		{"local shadows parameter", "void f(int a) { int a; }", "variable cannot have the same name as a parameter"},
		{"duplicate parameter", "void f(int a, int a) { }", "parameter redeclared"},
		{"duplicate function", "void f() { }\nvoid f() { }", "function with the same name already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.input)
			require.Error(t, err)
			var declErr *diag.DeclarationError
			require.ErrorAs(t, err, &declErr)
			assert.Equal(t, tt.msg, declErr.Msg)
		})
	}
}

func TestLiteralTypes(t *testing.T) {
	prog, err := analyze(t, `void f() { 1; 'a'; 1.5; "hi"; }`)
	require.NoError(t, err)

	exprs := bodyExprs(prog)
	require.Len(t, exprs, 4)

	assert.Equal(t, types.Int, exprs[0].ResultType())
	assert.Equal(t, types.Char, exprs[1].ResultType())
	assert.Equal(t, types.Float, exprs[2].ResultType())
	assert.Equal(t, types.Char, exprs[3].ResultType())
	assert.True(t, exprs[3].Array(), "a string literal is a char array")
}

func TestIdentifierResolutionOrder(t *testing.T) {
	// Parameters win over locals, locals win over globals.
	prog, err := analyze(t, `float x;
int f(int x) { x; return 0; }
int g() { char x; x; return 0; }
int h() { x; return 0; }`)
	require.NoError(t, err)

	fnExpr := func(i int) ast.Expr {
		return prog.Functions[i].Body.Stmts[0].(ast.Expr)
	}
	assert.Equal(t, types.Int, fnExpr(0).ResultType(), "parameter shadows global")
	assert.Equal(t, types.Char, fnExpr(1).ResultType(), "local shadows global")
	assert.Equal(t, types.Float, fnExpr(2).ResultType(), "global is the fallback")
}

func TestUndeclaredIdentifier(t *testing.T) {
	prog, err := analyze(t, `void f() { y; }`)
	require.Error(t, err)

	var typeErr *diag.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "undeclared identifier", typeErr.Msg)
	assert.Equal(t, "y", typeErr.Tok.Literal)
	assert.Equal(t, types.Error, bodyExprs(prog)[0].ResultType())
}

func TestArrayIndexing(t *testing.T) {
	prog, err := analyze(t, `int a[5];
void f() { a[0]; }`)
	require.NoError(t, err)

	idx := bodyExprs(prog)[0]
	assert.Equal(t, types.Int, idx.ResultType())
	assert.False(t, idx.Array(), "indexing yields the element type, non-array")
}

func TestArrayIndexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"non-array base", "int a;\nvoid f() { a[0]; }", "variable is not an array"},
		{"non-int index", "int a[5];\nvoid f() { a[1.5]; }", "array index must have type int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := analyze(t, tt.input)
			require.Error(t, err)
			var typeErr *diag.TypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Equal(t, tt.msg, typeErr.Msg)
			assert.Equal(t, types.Error, bodyExprs(prog)[0].ResultType())
		})
	}
}

func TestOperandRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Type
	}{
		{"int arithmetic", "void f() { 1 + 2 * 3; }", types.Int},
		{"float arithmetic", "void f() { 1.5 / 2.5; }", types.Float},
		{"modulo", "void f() { 7 % 3; }", types.Int},
		{"comparison yields int", "void f() { 1.5 < 2.5; }", types.Int},
		{"equality yields int", "void f() { 'a' == 'b'; }", types.Int},
		{"logical", "void f() { 1 && 0 || 1; }", types.Int},
		{"bitwise", "void f() { 1 & 2 | 4; }", types.Int},
		{"unary not", "void f() { !1; }", types.Int},
		{"unary minus keeps type", "void f() { -1.5; }", types.Float},
		{"cast", "void f() { (int) 1.5; }", types.Int},
		{"prefix increment", "int x;\nvoid f() { ++x; }", types.Int},
		{"ternary", "void f() { 1 ? 2.5 : 3.5; }", types.Float},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := analyze(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bodyExprs(prog)[0].ResultType())
		})
	}
}

func TestOperandMismatches(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mixed arithmetic", "void f() { 1 + 2.5; }"},
		{"float modulo", "void f() { 1.5 % 2.5; }"},
		{"float logical", "void f() { 1.5 && 1; }"},
		{"float bitwise", "void f() { 1.5 | 1; }"},
		{"mixed comparison", "void f() { 1 < 2.5; }"},
		{"non-int ternary condition", "void f() { 1.5 ? 1 : 2; }"},
		{"mismatched ternary branches", "void f() { 1 ? 1 : 2.5; }"},
		{"mismatched assignment", "int x;\nvoid f() { x = 1.5; }"},
		{"unary not on float", "void f() { !1.5; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := analyze(t, tt.input)
			require.Error(t, err)
			var typeErr *diag.TypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Equal(t, types.Error, bodyExprs(prog)[0].ResultType())
		})
	}
}

func TestAssignment(t *testing.T) {
	prog, err := analyze(t, `int x;
char s[10];
void f() { x = 1; s = "hi"; x += 2; }`)
	require.NoError(t, err)

	exprs := bodyExprs(prog)
	assert.Equal(t, types.Int, exprs[0].ResultType())
	assert.Equal(t, types.Char, exprs[1].ResultType())
	assert.True(t, exprs[1].Array(), "array assignment keeps the array flag")
	assert.Equal(t, types.Int, exprs[2].ResultType())
}

func TestBuiltinCalls(t *testing.T) {
	prog, err := analyze(t, `void f() {
	getchar();
	putchar(65);
	getint();
	putint(1);
	getfloat();
	putfloat(1.5);
	putstring("hi");
}`)
	require.NoError(t, err)

	want := []types.Type{
		types.Int, types.Int, types.Int, types.Void,
		types.Float, types.Float, types.Void,
	}
	exprs := bodyExprs(prog)
	require.Len(t, exprs, len(want))
	for i, w := range want {
		assert.Equal(t, w, exprs[i].ResultType(), "builtin call %d", i)
	}
}

func TestBuiltinMismatchIsError(t *testing.T) {
	prog, err := analyze(t, `void f(float x) { putint(x); }`)
	require.Error(t, err)

	var typeErr *diag.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "putint", typeErr.Tok.Literal)
	assert.Equal(t, types.Error, bodyExprs(prog)[0].ResultType())
}

func TestUserCallResolution(t *testing.T) {
	prog, err := analyze(t, `int add(int a, int b) { return a + b; }
void f() { add(1, 2); }`)
	require.NoError(t, err)

	e := prog.Functions[1].Body.Stmts[0].(ast.Expr)
	assert.Equal(t, types.Int, e.ResultType())
}

func TestUserCallExactMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no coercion", "void g(int a) { }\nvoid f() { g(1.5); }"},
		{"wrong arity", "void g(int a) { }\nvoid f() { g(1, 2); }"},
		{"array-ness must match", "void g(int a[]) { }\nvoid f() { g(1); }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.input)
			require.Error(t, err)
			var typeErr *diag.TypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Contains(t, typeErr.Msg, "no matching function")
		})
	}
}

func TestUserFunctionShadowsBuiltinOnExactMatch(t *testing.T) {
	prog, err := analyze(t, `float putint(int x) { return 1.5; }
void f() { putint(1); }`)
	require.NoError(t, err)

	e := prog.Functions[1].Body.Stmts[0].(ast.Expr)
	assert.Equal(t, types.Float, e.ResultType(), "user functions are checked before the standard library")
}

func TestCallToLaterFunctionIsError(t *testing.T) {
	// A call resolves only against functions already declared.
	_, err := analyze(t, `void f() { g(); }
void g() { }`)
	require.Error(t, err)

	var typeErr *diag.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "g", typeErr.Tok.Literal)
}

func TestRecursionResolves(t *testing.T) {
	_, err := analyze(t, `int fact(int n) { return n ? n * fact(n - 1) : 1; }`)
	require.NoError(t, err)
}

func TestErrorPropagatesToRoot(t *testing.T) {
	// One diagnostic for the root cause; the enclosing call is only
	// poisoned, not reported.
	prog, err := analyze(t, `void f() { putint(y + 1); }`)
	require.Error(t, err)

	var typeErr *diag.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "undeclared identifier", typeErr.Msg)
	assert.Equal(t, "y", typeErr.Tok.Literal)
	assert.Equal(t, types.Error, bodyExprs(prog)[0].ResultType())
}

func TestDerivationCoversNestedStatements(t *testing.T) {
	_, err := analyze(t, `void f(int n) {
	if (n > 0) {
		while (n) {
			do { putint(z); } while (n);
		}
	}
}`)
	require.Error(t, err, "errors inside nested control flow must be found")

	var typeErr *diag.TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "z", typeErr.Tok.Literal)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	input := `int a[5];
int f(int x) { return x + a[0]; }
void g() { f(1); putfloat(1.5); }`

	l := lexer.New("test.c", input)
	p := parser.New(l)
	prog, err := p.ParseProgram()
	require.NoError(t, err)

	require.NoError(t, Analyze(prog))
	first := snapshotTypes(prog)

	require.NoError(t, Analyze(prog))
	assert.Equal(t, first, snapshotTypes(prog))
}

// snapshotTypes records the derived type of every top-level expression of
// every function.
func snapshotTypes(prog *ast.Program) []types.Type {
	var out []types.Type
	for _, fn := range prog.Functions {
		for _, s := range fn.Body.Stmts {
			if e, ok := s.(ast.Expr); ok {
				out = append(out, e.ResultType())
			}
		}
	}
	return out
}
