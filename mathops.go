package shadertrace

import "github.com/gogpu/shadertrace/internal/ast"

// This file supplements spec.md §4.2's generic callFunc contract with the
// free-function math helpers the original engine exposes atop it — Dot,
// Cross, Normalize, Lerp, Saturate, Pow. Go has no free-floating operator
// overloads, so these are ordinary functions rather than operators, but
// they take no *Trace parameter of their own: each accepts proxies that
// already carry the trace they were constructed in.

// Dot computes the dot product of two same-arity vectors.
func Dot(a, b Vec) Float {
	call := callIntrinsic(a.t, "dot", []ast.Value{a.v, b.v})
	return Float{proxyBase{a.t, call}}
}

// Cross computes the cross product of two 3-vectors.
func Cross(a, b Vec) Vec {
	call := callIntrinsic(a.t, "cross", []ast.Value{a.v, b.v})
	return Vec{proxyBase{a.t, call}, a.n, a.kind}
}

// Normalize returns v scaled to unit length.
func Normalize(v Vec) Vec {
	call := callIntrinsic(v.t, "normalize", []ast.Value{v.v})
	return Vec{proxyBase{v.t, call}, v.n, v.kind}
}

// LerpFloat linearly interpolates between a and b by t.
func LerpFloat(a, b, t Float) Float {
	call := callIntrinsic(a.t, "lerp", []ast.Value{a.v, b.v, t.v})
	return Float{proxyBase{a.t, call}}
}

// LerpVec linearly interpolates between two vectors by a scalar t.
func LerpVec(a, b Vec, t Float) Vec {
	call := callIntrinsic(a.t, "lerp", []ast.Value{a.v, b.v, t.v})
	return Vec{proxyBase{a.t, call}, a.n, a.kind}
}

// Saturate clamps a scalar to [0, 1].
func Saturate(f Float) Float {
	call := callIntrinsic(f.t, "saturate", []ast.Value{f.v})
	return Float{proxyBase{f.t, call}}
}

// PowFloat raises base to exponent.
func PowFloat(base, exponent Float) Float {
	call := callIntrinsic(base.t, "pow", []ast.Value{base.v, exponent.v})
	return Float{proxyBase{base.t, call}}
}

// ClampFloat clamps f to [lo, hi].
func ClampFloat(f, lo, hi Float) Float {
	call := callIntrinsic(f.t, "clamp", []ast.Value{f.v, lo.v, hi.v})
	return Float{proxyBase{f.t, call}}
}

// ReflectVec reflects incident about normal.
func ReflectVec(incident, normal Vec) Vec {
	call := callIntrinsic(incident.t, "reflect", []ast.Value{incident.v, normal.v})
	return Vec{proxyBase{incident.t, call}, incident.n, incident.kind}
}
