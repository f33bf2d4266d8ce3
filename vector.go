package shadertrace

import (
	"fmt"

	"github.com/gogpu/shadertrace/internal/ast"
)

// Vec is a fixed-arity vector proxy (Vec2, Vec3, Vec4), all backed by
// the same implementation parameterized by arity and scalar kind, the
// way spec.md §3 frames vectors as "N×scalar".
type Vec struct {
	proxyBase
	n    int
	kind ast.Scalar
}

func vecType(kind ast.Scalar, n int) *ast.VecType { return &ast.VecType{Kind: kind, N: n} }

func newVec(t *Trace, kind ast.Scalar, n int) Vec {
	return Vec{proxyBase{t, newProxyValue(t, vecType(kind, n))}, n, kind}
}

// NewVec2/NewVec3/NewVec4 default-construct a float vector proxy per the
// five-way construction-context priority list.
func NewVec2(t *Trace) Vec { return newVec(t, ast.ScalarFloat, 2) }
func NewVec3(t *Trace) Vec { return newVec(t, ast.ScalarFloat, 3) }
func NewVec4(t *Trace) Vec { return newVec(t, ast.ScalarFloat, 4) }

// NewUVec3 default-constructs a uint3 vector proxy, used for
// gl_GlobalInvocationID-style dispatch thread IDs.
func NewUVec3(t *Trace) Vec { return newVec(t, ast.ScalarUint, 3) }

// VecLiteral constructs "floatN(components...)".
func VecLiteral(t *Trace, kind ast.Scalar, components ...float32) Vec {
	n := len(components)
	typ := vecType(kind, n)
	text := fmt.Sprintf("%s(", typ.SlangName())
	for i, c := range components {
		if i > 0 {
			text += ", "
		}
		text += fmt.Sprintf("%g", c)
	}
	text += ")"
	return Vec{proxyBase{t, fromLiteral(t, typ, text)}, n, kind}
}

func (v Vec) Value() ast.Value { return v.v }
func (v Vec) N() int           { return v.n }

func (v Vec) Add(rhs Vec) Vec { return v.binOp(rhs, "+") }
func (v Vec) Sub(rhs Vec) Vec { return v.binOp(rhs, "-") }
func (v Vec) Mul(rhs Vec) Vec { return v.binOp(rhs, "*") }
func (v Vec) Div(rhs Vec) Vec { return v.binOp(rhs, "/") }

// Scale multiplies every component by a scalar Float: "v * s".
func (v Vec) Scale(s Float) Vec {
	return Vec{proxyBase{v.t, v.t.BinaryOperator(v.v, s.v, "*", vecType(v.kind, v.n))}, v.n, v.kind}
}

func (v Vec) binOp(rhs Vec, op string) Vec {
	return Vec{proxyBase{v.t, v.t.BinaryOperator(v.v, rhs.v, op, vecType(v.kind, v.n))}, v.n, v.kind}
}

func (v Vec) Assign(rhs Vec) { v.t.Assign(v.v, rhs.v) }

// Swizzle constructs a member-access expression selecting the named
// components (e.g. "xy", "wzyx"), validated against this vector's arity.
// Every distinct 2/3/4-element swizzle over {x,y,z,w} is reachable this
// way (spec.md §4.3, "Swizzles").
func (v Vec) Swizzle(components string) Vec {
	if !ast.ValidSwizzle(components, v.n) {
		panic(fmt.Sprintf("shadertrace: invalid swizzle %q on a %d-component vector", components, v.n))
	}
	m := v.t.Member(v.v, components, vecType(v.kind, len(components)))
	return Vec{proxyBase{v.t, m}, len(components), v.kind}
}

// Component returns the scalar Float at swizzle index i (0=x, 1=y, ...).
func (v Vec) Component(i int) Float {
	m := v.t.Member(v.v, componentName(i), &ast.BasicType{Kind: v.kind})
	return Float{proxyBase{v.t, m}}
}

// X, Y, Z, W are convenience single-component swizzles.
func (v Vec) X() Float { return v.Component(0) }
func (v Vec) Y() Float { return v.Component(1) }
func (v Vec) Z() Float { return v.Component(2) }
func (v Vec) W() Float { return v.Component(3) }

// XY, XYZ, XYZW are the common multi-component swizzles; any other
// combination is available via Swizzle.
func (v Vec) XY() Vec   { return v.Swizzle("xy") }
func (v Vec) XYZ() Vec  { return v.Swizzle("xyz") }
func (v Vec) XYZW() Vec { return v.Swizzle("xyzw") }

// Mat is a fixed-shape R×C matrix proxy.
type Mat struct {
	proxyBase
	rows, cols int
}

func matType(rows, cols int) *ast.MatType {
	return &ast.MatType{Kind: ast.ScalarFloat, Rows: rows, Columns: cols}
}

func newMat(t *Trace, rows, cols int) Mat {
	return Mat{proxyBase{t, newProxyValue(t, matType(rows, cols))}, rows, cols}
}

func NewMat2(t *Trace) Mat { return newMat(t, 2, 2) }
func NewMat3(t *Trace) Mat { return newMat(t, 3, 3) }
func NewMat4(t *Trace) Mat { return newMat(t, 4, 4) }

func (m Mat) Value() ast.Value { return m.v }

// MulVec composes matrix-vector multiplication via
// the "mul" intrinsic (Slang's column-major convention, spec.md §6).
func (m Mat) MulVec(v Vec) Vec {
	call := m.t.CallFunc("mul", vecType(v.kind, v.n), []ast.Value{m.v, v.v}, nil)
	return Vec{proxyBase{m.t, call}, v.n, v.kind}
}

func (m Mat) MulMat(rhs Mat) Mat {
	call := m.t.CallFunc("mul", matType(m.rows, rhs.cols), []ast.Value{m.v, rhs.v}, nil)
	return Mat{proxyBase{m.t, call}, m.rows, rhs.cols}
}

func (m Mat) Assign(rhs Mat) { m.t.Assign(m.v, rhs.v) }
