package emit

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadertrace/internal/ast"
)

// EmitGlobals serializes every global statement, then synthesizes up to
// three wrapper structs from the uniform/array/texture members it saw
// along the way (spec.md §4.5, "Global emission"). It also sets each
// uniform/array/texture Variable's RefOverride so that subsequent
// EmitStage calls render expression references in the right form.
func (e *Emitter) EmitGlobals(globals []ast.Statement) string {
	var b strings.Builder
	if e.Bindless {
		b.WriteString(BindlessPrelude)
	}

	for _, st := range globals {
		e.setReferenceForm(st)

		text := st.Parse()
		if text == "" {
			continue
		}
		b.WriteString(text + "\n")
	}

	ubo := e.renderUBO()
	b.WriteString(ubo.structText)
	b.WriteString(e.renderPushConstant(ubo))
	b.WriteString(e.renderParameterBlock(ubo))

	e.uboMembers = nil
	e.pushConstantMembers = nil
	e.parameterBlockMembers = nil

	return b.String()
}

// setReferenceForm records, on each uniform/array/texture Variable, both
// its membership-buffer line (if it was actually referenced during the
// trace) and the text expression references to it should render as.
func (e *Emitter) setReferenceForm(st ast.Statement) {
	switch d := st.(type) {
	case *ast.DefineUniform:
		e.classify(d.Var, d.Var.Typ, d.Var.PushConstant)
	case *ast.DefineUniversalArray:
		e.classify(d.Var, d.Typ, false)
	case *ast.DefineUniversalTexture2D:
		e.classify(d.Var, d.Typ, false)
	}
}

func (e *Emitter) classify(v *ast.Variable, typ ast.Type, pushConstant bool) {
	if v.Permissions() == ast.None {
		return
	}
	line := fmt.Sprintf("\t%s %s;\n", typ.SlangName(), v.Name)
	if pushConstant {
		e.pushConstantMembers = append(e.pushConstantMembers, line)
		v.RefOverride = fmt.Sprintf("global_push_constant.%s", v.Name)
		return
	}
	e.uboMembers = append(e.uboMembers, line)
	if e.Bindless {
		v.RefOverride = fmt.Sprintf("(*global_push_constant.global_ubo).%s", v.Name)
	} else {
		v.RefOverride = fmt.Sprintf("global_parameter_block.global_ubo.%s", v.Name)
	}
}

type uboResult struct {
	structText string
	declText   string // "ConstantBuffer<global_ubo_struct> global_ubo;\n" or the bindless .Handle variant
	present    bool
}

func (e *Emitter) renderUBO() uboResult {
	if len(e.uboMembers) == 0 {
		return uboResult{}
	}
	var b strings.Builder
	b.WriteString("struct global_ubo_struct {\n")
	for _, m := range e.uboMembers {
		b.WriteString(m)
	}
	b.WriteString("}\n")

	decl := "ConstantBuffer<global_ubo_struct> global_ubo;\n"
	if e.Bindless {
		decl = "ConstantBuffer<global_ubo_struct>.Handle global_ubo;\n"
	}
	return uboResult{structText: b.String(), declText: decl, present: true}
}

func (e *Emitter) renderPushConstant(ubo uboResult) string {
	if len(e.pushConstantMembers) == 0 && !(e.Bindless && ubo.present) {
		return ""
	}
	var b strings.Builder
	b.WriteString("struct global_push_constant_struct {\n")
	for _, m := range e.pushConstantMembers {
		b.WriteString(m)
	}
	if e.Bindless && ubo.present {
		b.WriteString("\t" + ubo.declText)
	}
	b.WriteString("}\n")
	b.WriteString("[[vk::push_constant]] ConstantBuffer<global_push_constant_struct> global_push_constant;\n")
	return b.String()
}

func (e *Emitter) renderParameterBlock(ubo uboResult) string {
	if len(e.parameterBlockMembers) == 0 && !(!e.Bindless && ubo.present) {
		return ""
	}
	var b strings.Builder
	b.WriteString("struct parameter_block_struct {\n")
	for _, m := range e.parameterBlockMembers {
		b.WriteString(m)
	}
	if !e.Bindless && ubo.present {
		b.WriteString("\t" + ubo.declText)
	}
	b.WriteString("}\n")
	b.WriteString("ParameterBlock<parameter_block_struct> global_parameter_block;\n")
	return b.String()
}

// BindlessPrelude is the fixed descriptor-handle prelude prepended when
// bindless mode is active: Vulkan dynamic-resource arrays and a generic
// getDescriptorFromHandle<T> helper. Its exact content is part of the
// external Slang contract (spec.md §4.5, "Bindless prelude"), grounded
// verbatim on original_source/Src/Codegen/Generator/SlangGenerator.cpp.
const BindlessPrelude = `[vk::binding(0, 1)]
__DynamicResource<__DynamicResourceKind.Sampler> samplerHandles[];

[vk::binding(0, 2)]
__DynamicResource<__DynamicResourceKind.General> textureHandles[];

[vk::binding(0, 3)]
__DynamicResource<__DynamicResourceKind.General> bufferHandles[];

[vk::binding(0, 4)]
__DynamicResource<__DynamicResourceKind.General> combinedTextureSamplerHandles[];

[vk::binding(0, 5)]
__DynamicResource<__DynamicResourceKind.General> accelerationStructureHandles[];

[vk::binding(0, 6)]
__DynamicResource<__DynamicResourceKind.General> texelBufferHandles[];

export T getDescriptorFromHandle<T>(DescriptorHandle<T> handle) where T : IOpaqueDescriptor
{
    __target_switch
    {
        case spirv:
        case glsl:
        if (T.kind == DescriptorKind.Sampler)
            return samplerHandles[((uint2)handle).x].asOpaqueDescriptor<T>();
        else if (T.kind == DescriptorKind.Texture)
            return textureHandles[((uint2)handle).x].asOpaqueDescriptor<T>();
        else if (T.kind == DescriptorKind.Buffer)
            return bufferHandles[((uint2)handle).x].asOpaqueDescriptor<T>();
        else if (T.kind == DescriptorKind.CombinedTextureSampler)
            return combinedTextureSamplerHandles[((uint2)handle).x].asOpaqueDescriptor<T>();
        else if (T.kind == DescriptorKind.AccelerationStructure)
            return accelerationStructureHandles[((uint2)handle).x].asOpaqueDescriptor<T>();
        else if (T.kind == DescriptorKind.TexelBuffer)
            return texelBufferHandles[((uint2)handle).x].asOpaqueDescriptor<T>();
        else
            return defaultGetDescriptorFromHandle(handle);
        default:
        return defaultGetDescriptorFromHandle(handle);
    }
}
`
