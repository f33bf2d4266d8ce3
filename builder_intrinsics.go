package shadertrace

import "github.com/gogpu/shadertrace/internal/ast"

// intrinsic describes one built-in Slang function entry: its arity and
// how its return type is derived from the call-site argument types.
// Every argument is recorded as Read by callIntrinsic. Grounded on
// original_source's built-in intrinsic signature registry.
type intrinsic struct {
	argc       int
	returnType func(args []ast.Value) ast.Type
}

func scalarReturn(args []ast.Value) ast.Type { return args[0].Type() }

var intrinsicTable = map[string]intrinsic{
	"dot":       {argc: 2, returnType: func(args []ast.Value) ast.Type { return &ast.BasicType{Kind: ast.ScalarFloat} }},
	"cross":     {argc: 2, returnType: scalarReturn},
	"normalize": {argc: 1, returnType: scalarReturn},
	"lerp":      {argc: 3, returnType: scalarReturn},
	"pow":       {argc: 2, returnType: scalarReturn},
	"clamp":     {argc: 3, returnType: scalarReturn},
	"max":       {argc: 2, returnType: scalarReturn},
	"min":       {argc: 2, returnType: scalarReturn},
	"saturate":  {argc: 1, returnType: scalarReturn},
	"reflect":   {argc: 2, returnType: scalarReturn},
	"refract":   {argc: 3, returnType: scalarReturn},
}

// callIntrinsic looks up name in the built-in function table and emits a
// Call node with every argument given Read permission (pure-function
// convention) and the return type inferred from args. Panics if name or
// arity is unknown — intrinsics are a closed, compile-time-known set, so
// a mismatch here is a programming error in this package, not user input.
func callIntrinsic(t *Trace, name string, args []ast.Value) *ast.Call {
	i, ok := intrinsicTable[name]
	if !ok {
		panic("shadertrace: unknown intrinsic " + name)
	}
	if len(args) != i.argc {
		panic("shadertrace: intrinsic " + name + " called with wrong argument count")
	}
	return t.CallFunc(name, i.returnType(args), args, nil)
}
