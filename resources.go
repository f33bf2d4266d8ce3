package shadertrace

import (
	"github.com/gogpu/shadertrace/gpucore"
	"github.com/gogpu/shadertrace/internal/ast"
)

// ShaderResources is the reflection record for one compiled shader
// (spec.md §6): the push-constant block's name and size, plus every
// bindable resource the emitted source declared.
type ShaderResources struct {
	PushConstantName string
	PushConstantSize int
	Bindings         map[string]BindInfo
}

// BindInfo describes one reflected resource binding.
type BindInfo struct {
	Set          int
	Binding      int
	Location     int
	Semantic     string
	VariateName  string
	TypeName     string
	ElementCount int
	TypeSize     int
	ByteOffset   int
	BindType     gpucore.BindingType
}

// reflectResources walks one pipeline's global statement list and builds
// its reflection record, mirroring the classification
// internal/emit.Emitter.EmitGlobals applies when it buckets the same
// statements into the UBO, push-constant, and parameter-block structs.
// Globals never referenced during the trace (Permissions() == None) are
// elided from both the emitted source and this record alike.
func reflectResources(globals []ast.Statement, bindless bool) ShaderResources {
	res := ShaderResources{Bindings: make(map[string]BindInfo)}
	uboOffset, pushOffset := 0, 0

	for _, st := range globals {
		switch d := st.(type) {
		case *ast.DefineUniform:
			if d.Var.Permissions() == ast.None {
				continue
			}
			sz := typeSize(d.Var.Typ)
			if d.Var.PushConstant {
				res.Bindings[d.Var.Name] = BindInfo{
					Set: -1, Binding: -1,
					VariateName: d.Var.Name,
					TypeName:    d.Var.Typ.SlangName(),
					TypeSize:    sz,
					ByteOffset:  pushOffset,
					BindType:    gpucore.BindingTypePushConstant,
				}
				pushOffset += sz
				continue
			}
			res.Bindings[d.Var.Name] = BindInfo{
				Set: 0, Binding: 0,
				VariateName: d.Var.Name,
				TypeName:    d.Var.Typ.SlangName(),
				TypeSize:    sz,
				ByteOffset:  uboOffset,
				BindType:    gpucore.BindingTypeUniformBuffer,
			}
			uboOffset += sz

		case *ast.DefineUniversalArray:
			if d.Var.Permissions() == ast.None {
				continue
			}
			bindType := gpucore.BindingTypeReadOnlyStorageBuffer
			if d.Typ.Permissions().Has(ast.Write) {
				bindType = gpucore.BindingTypeStorageBuffer
			}
			set, binding := 0, 0
			if bindless {
				set, binding = 3, 0 // bufferHandles, emit/globals.go's BindlessPrelude
			}
			res.Bindings[d.Var.Name] = BindInfo{
				Set: set, Binding: binding,
				VariateName: d.Var.Name,
				TypeName:    d.Typ.SlangName(),
				BindType:    bindType,
			}

		case *ast.DefineUniversalTexture2D:
			if d.Var.Permissions() == ast.None {
				continue
			}
			bindType := gpucore.BindingTypeSampledTexture
			if d.Typ.Permissions().Has(ast.Write) {
				bindType = gpucore.BindingTypeStorageTexture
			}
			set, binding := 0, 0
			if bindless {
				set, binding = 2, 0 // textureHandles, emit/globals.go's BindlessPrelude
			}
			res.Bindings[d.Var.Name] = BindInfo{
				Set: set, Binding: binding,
				VariateName: d.Var.Name,
				TypeName:    d.Typ.SlangName(),
				BindType:    bindType,
			}
		}
	}

	if pushOffset > 0 {
		res.PushConstantName = "global_push_constant"
		res.PushConstantSize = pushOffset
	}
	return res
}

// typeSize returns a basic/vector/matrix type's size in bytes (4-byte
// scalars, the only kind this trace's uniform members may hold).
// Resource types (arrays, textures, aggregates) are handle-sized in
// Slang, not byte-sized, and report 0.
func typeSize(t ast.Type) int {
	switch v := t.(type) {
	case *ast.BasicType:
		return 4
	case *ast.VecType:
		return 4 * v.N
	case *ast.MatType:
		return 4 * v.Rows * v.Columns
	default:
		return 0
	}
}
