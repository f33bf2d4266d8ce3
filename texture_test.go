package shadertrace

import (
	"strings"
	"testing"

	"github.com/gogpu/shadertrace/internal/ast"
	"github.com/gogpu/shadertrace/internal/emit"
)

func TestNewUniversalTexture2D(t *testing.T) {
	tr := NewTrace()
	tex := NewUniversalTexture2D[Vec](tr)
	if tex.v.Kind != ast.VarUniversalTexture2D {
		t.Errorf("texture variable kind = %v, want VarUniversalTexture2D", tex.v.Kind)
	}
}

func TestTexture2DAtElementAccess(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	tex := NewUniversalTexture2D[Vec](tr)
	coord := NewVec2(tr)
	elem := tex.At(coord)
	elem.Assign(VecLiteral(tr, ast.ScalarFloat, 1, 0, 0, 1))
	if !tex.v.Permissions().Has(ast.Write) {
		t.Error("assigning a texture element should mark the texture Write")
	}
	texTyp := tex.v.Typ.(*ast.Texture2DType)
	if !texTyp.Permissions().Has(ast.Write) {
		t.Error("assigning a texture element should also mark the Texture2DType Write, since SlangName/reflection decide RW from the type node, not the Variable")
	}
}

// TestTexture2DWriteEmitsReadWriteVariant is the end-to-end regression for
// the Variable->Typ write-propagation bug: writing through a proxy must
// actually change what gets emitted, not just what the Variable reports.
func TestTexture2DWriteEmitsReadWriteVariant(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	tex := NewUniversalTexture2D[Vec](tr)
	coord := NewVec2(tr)
	tex.At(coord).Assign(VecLiteral(tr, ast.ScalarFloat, 1, 0, 0, 1))
	tr.EndPipelineParse()

	src := emit.New(false).EmitGlobals(tr.Globals())
	if !strings.Contains(src, "RWTexture2D") {
		t.Errorf("a written texture should emit as RWTexture2D, got:\n%s", src)
	}
}

func TestArrayWriteEmitsReadWriteVariant(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	arr := NewUniversalArray[Float](tr)
	idx := NewUint(tr)
	arr.At(idx).Assign(NewFloat(tr))
	tr.EndPipelineParse()

	src := emit.New(false).EmitGlobals(tr.Globals())
	if !strings.Contains(src, "RWStructuredBuffer") {
		t.Errorf("a written array should emit as RWStructuredBuffer, got:\n%s", src)
	}
}

func TestTexture2DSampleLazilyCreatesSampler(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	tex := NewUniversalTexture2D[Vec](tr)
	uv := NewVec2(tr)
	var s Sampler
	result := tex.Sample(&s, uv)
	if s.v == nil {
		t.Fatal("Sample should lazily realize the sampler's uniform variable")
	}
	call, ok := result.Value().(*ast.Call)
	if !ok {
		t.Fatalf("Sample should produce a *ast.Call, got %T", result.Value())
	}
	if call.Name != "Sample" {
		t.Errorf("Sample call name = %q, want %q", call.Name, "Sample")
	}
	if call.Receiver != tex.v {
		t.Error("Sample should set the texture variable as the call's Receiver, so the receiver text is rendered lazily at emission time")
	}
	if !tex.v.Permissions().Has(ast.Read) {
		t.Error("Sample should mark the texture Read")
	}
	if !s.v.Permissions().Has(ast.Read) {
		t.Error("Sample should mark the sampler Read")
	}
}

// TestTexture2DSampleReceiverUsesRefOverride is the end-to-end regression
// for the trace-time-name-baking bug: Sample's receiver must render via
// the Variable's RefOverride, not a captured bare Name, so it references
// the same parameter-block path the declaration was routed to.
func TestTexture2DSampleReceiverUsesRefOverride(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	tex := NewUniversalTexture2D[Vec](tr)
	uv := NewVec2(tr)
	var s Sampler
	result := tex.Sample(&s, uv)
	tr.EndPipelineParse()

	e := emit.New(false)
	_ = e.EmitGlobals(tr.Globals()) // sets tex.v.RefOverride as a side effect

	call := result.Value().(*ast.Call)
	rendered := call.Parse()
	if !strings.Contains(rendered, "global_parameter_block.global_ubo."+tex.v.Name+".Sample(") {
		t.Errorf("Sample call should render through the texture's RefOverride, got %q", rendered)
	}
}

func TestTexture2DSampleReusesSamplerAcrossCalls(t *testing.T) {
	tr := NewTrace()
	tr.BeginShaderParse(StageVertex)
	tex := NewUniversalTexture2D[Vec](tr)
	uv := NewVec2(tr)
	var s Sampler
	tex.Sample(&s, uv)
	first := s.v
	tex.Sample(&s, uv)
	if s.v != first {
		t.Error("a second Sample call on an already-realized Sampler should reuse the same variable")
	}
}
