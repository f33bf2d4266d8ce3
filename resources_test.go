package shadertrace

import (
	"testing"

	"github.com/gogpu/shadertrace/gpucore"
	"github.com/gogpu/shadertrace/internal/ast"
)

func TestTypeSize(t *testing.T) {
	tests := []struct {
		name string
		typ  ast.Type
		want int
	}{
		{"basic", &ast.BasicType{Kind: ast.ScalarFloat}, 4},
		{"vec3", &ast.VecType{Kind: ast.ScalarFloat, N: 3}, 12},
		{"vec4", &ast.VecType{Kind: ast.ScalarFloat, N: 4}, 16},
		{"mat4x4", &ast.MatType{Kind: ast.ScalarFloat, Rows: 4, Columns: 4}, 64},
		{"array (handle-sized)", &ast.ArrayType{Element: &ast.BasicType{Kind: ast.ScalarFloat}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typeSize(tt.typ); got != tt.want {
				t.Errorf("typeSize(%T) = %d, want %d", tt.typ, got, tt.want)
			}
		})
	}
}

func TestReflectResourcesElidesUnreferencedGlobals(t *testing.T) {
	tr := NewTrace()
	tr.DefineUniformVariate(floatType, false) // never accessed
	res := reflectResources(tr.Globals(), false)
	if len(res.Bindings) != 0 {
		t.Errorf("unreferenced uniform should be elided from reflection, got %d bindings", len(res.Bindings))
	}
}

func TestReflectResourcesUBOAndPushConstantRouting(t *testing.T) {
	tr := NewTrace()
	ubo := tr.DefineUniformVariate(floatType, false)
	ubo.Access(ast.Read)
	push := tr.DefineUniformVariate(floatType, true)
	push.Access(ast.Read)

	res := reflectResources(tr.Globals(), false)

	uboInfo, ok := res.Bindings[ubo.Name]
	if !ok {
		t.Fatal("UBO member missing from reflection")
	}
	if uboInfo.BindType != gpucore.BindingTypeUniformBuffer {
		t.Errorf("UBO member BindType = %v, want BindingTypeUniformBuffer", uboInfo.BindType)
	}
	if uboInfo.Set != 0 || uboInfo.Binding != 0 {
		t.Errorf("UBO member binding = (%d,%d), want (0,0)", uboInfo.Set, uboInfo.Binding)
	}

	pushInfo, ok := res.Bindings[push.Name]
	if !ok {
		t.Fatal("push-constant member missing from reflection")
	}
	if pushInfo.BindType != gpucore.BindingTypePushConstant {
		t.Errorf("push-constant member BindType = %v, want BindingTypePushConstant", pushInfo.BindType)
	}
	if pushInfo.Set != -1 || pushInfo.Binding != -1 {
		t.Errorf("push-constant binding = (%d,%d), want (-1,-1)", pushInfo.Set, pushInfo.Binding)
	}

	if res.PushConstantName != "global_push_constant" {
		t.Errorf("PushConstantName = %q, want global_push_constant", res.PushConstantName)
	}
	if res.PushConstantSize != 4 {
		t.Errorf("PushConstantSize = %d, want 4", res.PushConstantSize)
	}
}

func TestReflectResourcesArrayReadOnlyVsStorage(t *testing.T) {
	tr := NewTrace()
	roArr := tr.DefineUniversalArray(floatType)
	roArr.Access(ast.Read)
	rwArr := tr.DefineUniversalArray(floatType)
	rwArr.Access(ast.ReadWrite) // Variable.Access propagates Write to the ArrayType too

	res := reflectResources(tr.Globals(), false)

	if got := res.Bindings[roArr.Name].BindType; got != gpucore.BindingTypeReadOnlyStorageBuffer {
		t.Errorf("read-only array BindType = %v, want BindingTypeReadOnlyStorageBuffer", got)
	}
	if got := res.Bindings[rwArr.Name].BindType; got != gpucore.BindingTypeStorageBuffer {
		t.Errorf("written array BindType = %v, want BindingTypeStorageBuffer", got)
	}
}

func TestReflectResourcesBindlessArrayAndTextureSlots(t *testing.T) {
	tr := NewTrace()
	arr := tr.DefineUniversalArray(floatType)
	arr.Access(ast.Read)
	tex := tr.DefineUniversalTexture2D(vecType(ast.ScalarFloat, 4))
	tex.Access(ast.Read)

	res := reflectResources(tr.Globals(), true)

	arrInfo := res.Bindings[arr.Name]
	if arrInfo.Set != 3 || arrInfo.Binding != 0 {
		t.Errorf("bindless array binding = (%d,%d), want (3,0)", arrInfo.Set, arrInfo.Binding)
	}
	texInfo := res.Bindings[tex.Name]
	if texInfo.Set != 2 || texInfo.Binding != 0 {
		t.Errorf("bindless texture binding = (%d,%d), want (2,0)", texInfo.Set, texInfo.Binding)
	}
}

func TestReflectResourcesTextureStorageVsSampled(t *testing.T) {
	tr := NewTrace()
	sampled := tr.DefineUniversalTexture2D(vecType(ast.ScalarFloat, 4))
	sampled.Access(ast.Read)
	storage := tr.DefineUniversalTexture2D(vecType(ast.ScalarFloat, 4))
	storage.Access(ast.ReadWrite) // Variable.Access propagates Write to the Texture2DType too

	res := reflectResources(tr.Globals(), false)
	if got := res.Bindings[sampled.Name].BindType; got != gpucore.BindingTypeSampledTexture {
		t.Errorf("read-only texture BindType = %v, want BindingTypeSampledTexture", got)
	}
	if got := res.Bindings[storage.Name].BindType; got != gpucore.BindingTypeStorageTexture {
		t.Errorf("written texture BindType = %v, want BindingTypeStorageTexture", got)
	}
}
