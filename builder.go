package shadertrace

import (
	"reflect"

	"github.com/gogpu/shadertrace/internal/ast"
)

// DefineLocalVariate appends a define-local statement to the top of the
// statement stack and returns a reference to the new variable. If init
// is non-nil it is marked Read (spec.md §4.2).
func (t *Trace) DefineLocalVariate(typ ast.Type, init ast.Value) *ast.Variable {
	v := &ast.Variable{Kind: ast.VarLocal, Name: t.NextLocalName(), Typ: typ}
	if init != nil {
		accumulate(init, ast.Read)
	}
	t.AppendLocal(&ast.DefineLocal{Var: v, Init: init})
	return v
}

// DefineInputVariate appends to the current stage's input list.
func (t *Trace) DefineInputVariate(typ ast.Type, location int) *ast.Variable {
	v := &ast.Variable{Kind: ast.VarInput, Name: t.NextLocalName(), Typ: typ, Location: location}
	t.structure.AppendInput(&ast.DefineInput{Var: v})
	return v
}

// DefineOutputVariate appends to the current stage's output list.
func (t *Trace) DefineOutputVariate(typ ast.Type, location int) *ast.Variable {
	v := &ast.Variable{Kind: ast.VarOutput, Name: t.NextLocalName(), Typ: typ, Location: location}
	t.structure.AppendOutput(&ast.DefineOutput{Var: v})
	return v
}

// DefineUniformVariate appends a global uniform. Non-push uniforms are
// later routed by the emitter into the shared UBO struct; push-constant
// uniforms go into the push-constant struct.
func (t *Trace) DefineUniformVariate(typ ast.Type, pushConstant bool) *ast.Variable {
	v := &ast.Variable{Kind: ast.VarUniform, Name: t.NextGlobalName(), Typ: typ, PushConstant: pushConstant}
	t.structure.AppendGlobal(&ast.DefineUniform{Var: v})
	return v
}

// DefineUniversalArray appends a global StructuredBuffer declaration.
// Permissions accumulate on both the variable and its array type until
// emission decides RW vs read-only.
func (t *Trace) DefineUniversalArray(elementType ast.Type) *ast.Variable {
	arrTyp := &ast.ArrayType{Element: elementType}
	v := &ast.Variable{Kind: ast.VarUniversalArray, Name: t.NextGlobalName(), Typ: arrTyp}
	t.structure.AppendGlobal(&ast.DefineUniversalArray{Var: v, Typ: arrTyp})
	return v
}

// DefineUniversalTexture2D appends a global Texture2D declaration.
func (t *Trace) DefineUniversalTexture2D(texelType ast.Type) *ast.Variable {
	texTyp := &ast.Texture2DType{Texel: texelType}
	v := &ast.Variable{Kind: ast.VarUniversalTexture2D, Name: t.NextGlobalName(), Typ: texTyp}
	t.structure.AppendGlobal(&ast.DefineUniversalTexture2D{Var: v, Typ: texTyp})
	return v
}

// CreateAggregateType interns typ by host struct identity: the first
// trace to construct an aggregate of this Go type appends a
// define-aggregate-type global and returns the new AST type; every
// subsequent call for the same Go type returns the same AST type
// (spec.md §4.2, createAggregateType).
func (t *Trace) CreateAggregateType(identity reflect.Type, members []ast.Field) *ast.AggregateType {
	if existing, ok := t.aggregateIdentities[identity]; ok {
		return existing
	}
	agg := &ast.AggregateType{Name: t.NextAggregateName(), Members: members}
	t.aggregateIdentities[identity] = agg
	t.structure.AppendGlobal(&ast.DefineAggregateType{Typ: agg})
	return agg
}

// BinaryOperator builds a binary-expression node and applies Read to
// both operands. resultType overrides the default left-operand type
// (used for comparisons, which always produce bool).
func (t *Trace) BinaryOperator(lhs, rhs ast.Value, op string, resultType ast.Type) *ast.BinaryOp {
	accumulate(lhs, ast.Read)
	accumulate(rhs, ast.Read)
	rt := resultType
	if rt == nil {
		rt = lhs.Type()
	}
	return &ast.BinaryOp{Left: lhs, Right: rhs, Op: op, ResultType: rt}
}

// UnaryOperator builds a unary-expression node, applying the given
// permission to the operand (Read for +/-/!/~, ReadWrite for ++/--).
func (t *Trace) UnaryOperator(v ast.Value, op string, prefix bool, perm ast.Permission) *ast.UnaryOp {
	accumulate(v, perm)
	return &ast.UnaryOp{Operand: v, Op: op, Prefix: prefix}
}

// Assign appends an assign statement: lvalue gets Write, rvalue gets Read.
func (t *Trace) Assign(lvalue, rvalue ast.Value) {
	accumulate(lvalue, ast.Write)
	accumulate(rvalue, ast.Read)
	t.AppendLocal(&ast.Assign{LValue: lvalue, RValue: rvalue})
}

// At constructs an element reference "base[index]" with Read applied to
// the index expression (the caller applies Read/Write to the element
// itself according to how it's used).
func (t *Trace) At(base ast.Value, index ast.Value, elemType ast.Type) *ast.Element {
	accumulate(index, ast.Read)
	return &ast.Element{Base: base, Index: index, Typ: elemType}
}

// Member constructs a field-access or swizzle reference "base.name".
func (t *Trace) Member(base ast.Value, name string, typ ast.Type) *ast.Member {
	return &ast.Member{Base: base, Name: name, Typ: typ}
}

// CallFunc constructs a function-call expression. perms, if non-nil,
// must have one entry per argument; a nil perms defaults every argument
// to Read (pure-function convention, spec.md §4.2).
func (t *Trace) CallFunc(name string, returnType ast.Type, args []ast.Value, perms []ast.Permission) *ast.Call {
	for i, a := range args {
		p := ast.Read
		if perms != nil {
			p = perms[i]
		}
		accumulate(a, p)
	}
	return &ast.Call{Name: name, Args: args, ReturnType: returnType}
}

// CallMethod constructs a method-style call expression "receiver.name(args)".
// receiver is applied Read and rendered via its own Parse() at emission
// time (so a Variable receiver picks up its RefOverride); perms behaves
// as in CallFunc.
func (t *Trace) CallMethod(receiver ast.Value, name string, returnType ast.Type, args []ast.Value, perms []ast.Permission) *ast.Call {
	accumulate(receiver, ast.Read)
	for i, a := range args {
		p := ast.Read
		if perms != nil {
			p = perms[i]
		}
		accumulate(a, p)
	}
	return &ast.Call{Receiver: receiver, Name: name, Args: args, ReturnType: returnType}
}

// UniversalStatement records a side-effecting expression (post-increment,
// a discarded void call) as its own statement.
func (t *Trace) UniversalStatement(v ast.Value) {
	t.AppendLocal(&ast.UniversalStatement{Expr: v})
}

// accumulate applies p to v if v tracks access permissions (Variable,
// Member, Element); literals and pure expression nodes ignore it.
func accumulate(v ast.Value, p ast.Permission) {
	if a, ok := v.(ast.Accessible); ok {
		a.Access(p)
	}
}
