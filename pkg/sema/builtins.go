package sema

import (
	"github.com/minicc-lang/minicc/pkg/ast"
	"github.com/minicc-lang/minicc/pkg/types"
)

// paramSig is one expected argument of a builtin: exact type and array-ness.
type paramSig struct {
	typ     types.Type
	isArray bool
}

// signature describes one standard-library function.
type signature struct {
	params []paramSig
	ret    types.Type
}

// builtins is the fixed standard-library table, always resolvable
// independent of user declarations.
var builtins = map[string]signature{
	"getchar":   {ret: types.Int},
	"putchar":   {params: []paramSig{{types.Int, false}}, ret: types.Int},
	"getint":    {ret: types.Int},
	"putint":    {params: []paramSig{{types.Int, false}}, ret: types.Void},
	"getfloat":  {ret: types.Float},
	"putfloat":  {params: []paramSig{{types.Float, false}}, ret: types.Float},
	"putstring": {params: []paramSig{{types.Char, true}}, ret: types.Void},
}

// resolveBuiltin matches the call against the standard-library table with
// the same exact-match rule as user functions.
func resolveBuiltin(n *ast.Call) (types.Type, bool) {
	sig, ok := builtins[n.Tok.Literal]
	if !ok || len(sig.params) != len(n.Args) {
		return types.Error, false
	}
	for i, p := range sig.params {
		if p.typ != n.Args[i].ResultType() || p.isArray != n.Args[i].Array() {
			return types.Error, false
		}
	}
	return sig.ret, true
}
