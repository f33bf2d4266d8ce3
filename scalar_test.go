package shadertrace

import (
	"testing"

	"github.com/gogpu/shadertrace/internal/ast"
)

func TestFloatArithmeticAndComparisons(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewFloat(tr)
	b := NewFloat(tr)

	tests := []struct {
		name string
		got  ast.Value
		want string
	}{
		{"add", a.Add(b).Value(), "+"},
		{"sub", a.Sub(b).Value(), "-"},
		{"mul", a.Mul(b).Value(), "*"},
		{"div", a.Div(b).Value(), "/"},
		{"eq", a.Eq(b).Value(), "=="},
		{"ne", a.Ne(b).Value(), "!="},
		{"lt", a.Lt(b).Value(), "<"},
		{"le", a.Le(b).Value(), "<="},
		{"gt", a.Gt(b).Value(), ">"},
		{"ge", a.Ge(b).Value(), ">="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := tt.got.(*ast.BinaryOp)
			if !ok {
				t.Fatalf("expected *ast.BinaryOp, got %T", tt.got)
			}
			if op.Op != tt.want {
				t.Errorf("op = %q, want %q", op.Op, tt.want)
			}
		})
	}
}

func TestFloatComparisonResultIsBool(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewFloat(tr)
	b := NewFloat(tr)
	result := a.Eq(b)
	if result.Value().Type() != boolType {
		t.Error("Float comparison should produce a Bool-typed expression")
	}
}

func TestFloatNeg(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewFloat(tr)
	neg := a.Neg()
	op, ok := neg.Value().(*ast.UnaryOp)
	if !ok {
		t.Fatalf("expected *ast.UnaryOp, got %T", neg.Value())
	}
	if op.Op != "-" || !op.Prefix {
		t.Errorf("Neg() should produce prefix '-', got op=%q prefix=%v", op.Op, op.Prefix)
	}
}

func TestFloatIncDecRecordStatements(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewFloat(tr)
	a.Inc()
	a.Dec()
	results := tr.EndPipelineParse()
	locals := results[0].Locals
	lastTwo := locals[len(locals)-2:]
	if _, ok := lastTwo[0].(*ast.UniversalStatement); !ok {
		t.Errorf("Inc() should append a UniversalStatement, got %T", lastTwo[0])
	}
	if _, ok := lastTwo[1].(*ast.UniversalStatement); !ok {
		t.Errorf("Dec() should append a UniversalStatement, got %T", lastTwo[1])
	}
}

func TestFloatAssignDoesNotMutateReceiver(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewFloat(tr)
	before := a.Value()
	a.Assign(FloatLiteral(tr, 5))
	if a.Value() != before {
		t.Error("Assign should not mutate the host Float value; it only emits an AST statement")
	}
}

func TestFloatCopyProducesNewLocal(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewFloat(tr)
	b := a.Copy()
	if a.Value() == b.Value() {
		t.Error("Copy() should produce a distinct local variable reference")
	}
}

func TestFloatLiteralAtGlobalScopeIsUniform(t *testing.T) {
	tr := NewTrace()
	lit := FloatLiteral(tr, 3.5)
	v, ok := lit.Value().(*ast.Variable)
	if !ok {
		t.Fatalf("at global scope FloatLiteral should materialize a uniform, got %T", lit.Value())
	}
	if v.Kind != ast.VarUniform {
		t.Errorf("at global scope FloatLiteral should materialize a uniform, got kind %v", v.Kind)
	}
}

func TestIntArithmetic(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewInt(tr)
	b := NewInt(tr)
	sum := a.Add(b)
	op := sum.Value().(*ast.BinaryOp)
	if op.Op != "+" {
		t.Errorf("Int.Add op = %q, want +", op.Op)
	}
	a.Assign(IntLiteral(tr, 2))
}

func TestUintAdd(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewUint(tr)
	b := NewUint(tr)
	sum := a.Add(b)
	if sum.Value().Type() != uintType {
		t.Error("Uint.Add should produce a uint-typed result")
	}
}

func TestBoolLogicAndAssign(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := NewBool(tr)
	b := NewBool(tr)
	and := a.And(b)
	or := a.Or(b)
	not := a.Not()

	if op := and.Value().(*ast.BinaryOp); op.Op != "&&" {
		t.Errorf("And() op = %q, want &&", op.Op)
	}
	if op := or.Value().(*ast.BinaryOp); op.Op != "||" {
		t.Errorf("Or() op = %q, want ||", op.Op)
	}
	if op := not.Value().(*ast.UnaryOp); op.Op != "!" {
		t.Errorf("Not() op = %q, want !", op.Op)
	}
	a.Assign(BoolLiteral(tr, true))
}

func TestBoolLiteralTextRendering(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	tLit, ok := BoolLiteral(tr, true).Value().(*ast.Variable)
	if !ok || tLit.Typ != boolType {
		t.Fatal("sanity check failed")
	}
	results := tr.EndPipelineParse()
	if got, want := results[0].Locals[0].Parse(), "bool "+tLit.Name+" = true;"; got != want {
		t.Errorf("BoolLiteral(true) recorded %q, want %q", got, want)
	}
}
