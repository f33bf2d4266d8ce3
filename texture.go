package shadertrace

import (
	"github.com/gogpu/shadertrace/internal/ast"
)

// Texture2D is a proxy over a global Texture2D<E>/RWTexture2D<E>
// resource (spec.md §4.3, "Texture and sampler").
type Texture2D[E elemKind] struct {
	t       *Trace
	v       *ast.Variable
	texel   ast.Type
}

// NewUniversalTexture2D declares a new global 2D texture of texel type E.
func NewUniversalTexture2D[E elemKind](t *Trace) Texture2D[E] {
	var zero E
	et := elemType(zero)
	v := t.DefineUniversalTexture2D(et)
	return Texture2D[E]{t, v, et}
}

// At returns an assignable element reference "tex[coord]".
func (tex Texture2D[E]) At(coord Vec) Element[E] {
	elem := tex.t.At(tex.v, coord.v, tex.texel)
	return Element[E]{tex.t, elem}
}

// Sampler is a proxy over a global SamplerState resource, realized
// lazily as a uniform on first use by Sample.
type Sampler struct {
	t *Trace
	v *ast.Variable
}

// samplerType is shared by every Sampler since SamplerState carries no
// type parameter.
var samplerType = &ast.SamplerType{}

// Sample calls "tex.Sample(sampler, uv)", applying Read to both the
// texture and the sampler and returning the sampled texel as E
// (spec.md §4.3: "both sampler and texture gain Read permission").
func (tex Texture2D[E]) Sample(s *Sampler, uv Vec) E {
	if s.v == nil {
		s.v = tex.t.DefineUniformVariate(samplerType, false)
		s.t = tex.t
	}
	call := tex.t.CallMethod(tex.v, "Sample", tex.texel, []ast.Value{s.v, uv.v}, []ast.Permission{ast.Read, ast.Read})
	return wrapElement[E](tex.t, call)
}
