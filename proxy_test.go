package shadertrace

import (
	"testing"

	"github.com/gogpu/shadertrace/internal/ast"
)

func TestNewProxyValueDefaultsLocalInsideOpenStage(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	f := NewFloat(tr)
	v, ok := f.Value().(*ast.Variable)
	if !ok {
		t.Fatalf("expected *ast.Variable, got %T", f.Value())
	}
	if v.Kind != ast.VarLocal {
		t.Errorf("bare NewFloat inside an open stage should construct a local, got kind %v", v.Kind)
	}
}

func TestNewProxyValueDefaultsUniformOutsideOpenStage(t *testing.T) {
	tr := NewTrace()
	f := NewFloat(tr)
	v, ok := f.Value().(*ast.Variable)
	if !ok {
		t.Fatalf("expected *ast.Variable, got %T", f.Value())
	}
	if v.Kind != ast.VarUniform {
		t.Errorf("bare NewFloat outside a stage parse should construct a uniform, got kind %v", v.Kind)
	}
}

func TestComponentNamePanicsOutOfRange(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("componentName(4) should panic: only x/y/z/w are valid")
		}
	}()
	componentName(4)
}

func TestFromCopyMaterializesNewLocal(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	src := tr.DefineLocalVariate(floatType, nil)
	copied := fromCopy(tr, src)
	if copied == src {
		t.Error("fromCopy should materialize a distinct local")
	}
	def, ok := copied.(*ast.Variable)
	if !ok || def.Kind != ast.VarLocal {
		t.Errorf("fromCopy result should be a local variable, got %#v", copied)
	}
}

func TestNextInputLocationIncrementsSequentially(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	a := tr.DefineInputVariate(floatType, nextInputLocation(tr))
	b := tr.DefineInputVariate(floatType, nextInputLocation(tr))
	if a.Location != 0 {
		t.Errorf("first input location = %d, want 0", a.Location)
	}
	if b.Location != 1 {
		t.Errorf("second input location = %d, want 1", b.Location)
	}
}
