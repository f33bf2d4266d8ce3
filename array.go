package shadertrace

import "github.com/gogpu/shadertrace/internal/ast"

// elemKind is implemented by every scalar/vector proxy kind usable as an
// array or texture element type, so Array[E]/Texture2D[E] can derive the
// ast.Type without a type switch at every call site.
type elemKind interface {
	Float | Int | Uint | Bool | Vec
}

func elemType[E elemKind](zero E) ast.Type {
	switch v := any(zero).(type) {
	case Float:
		return floatType
	case Int:
		return intType
	case Uint:
		return uintType
	case Bool:
		return boolType
	case Vec:
		if v.n == 0 {
			return vecType(ast.ScalarFloat, 4)
		}
		return vecType(v.kind, v.n)
	default:
		return floatType
	}
}

// Array is a proxy over a global StructuredBuffer<E>/RWStructuredBuffer<E>
// (spec.md's "array-of-T" global, referred to there as
// defineUniversalArray). Indexing is read-only until an indexed element
// is written, at which point the whole array is emitted with the RW
// prefix (spec.md §3, "Access permissions").
type Array[E elemKind] struct {
	t       *Trace
	v       *ast.Variable
	element ast.Type
}

// NewUniversalArray declares a new global array of element type E.
func NewUniversalArray[E elemKind](t *Trace) Array[E] {
	var zero E
	et := elemType(zero)
	v := t.DefineUniversalArray(et)
	return Array[E]{t, v, et}
}

// At returns an element reference "array[index]". The permission
// applied to the element (and thus to the whole array) is determined by
// how the caller subsequently uses the returned value — as an rvalue
// (Read, via the element proxy's own accessors) or as an assignment
// target (Write, via Assign on the returned element wrapper).
func (a Array[E]) At(index Uint) Element[E] {
	elem := a.t.At(a.v, index.v, a.element)
	return Element[E]{a.t, elem}
}

// Element is an assignable reference into an Array or Texture2D.
type Element[E elemKind] struct {
	t *Trace
	v *ast.Element
}

func (e Element[E]) Value() ast.Value { return e.v }

// Read marks this element Read and returns it as a scalar/vector proxy
// of kind E.
func (e Element[E]) Read() E {
	accumulate(e.v, ast.Read)
	return wrapElement[E](e.t, e.v)
}

// Assign marks this element Write and records "element = rhs;".
func (e Element[E]) Assign(rhs E) {
	rv := any(rhs).(interface{ Value() ast.Value }).Value()
	e.t.Assign(e.v, rv)
}

// wrapElement builds a proxy of kind E wrapping an already-constructed
// AST value, used when reading back an array/texture element.
func wrapElement[E elemKind](t *Trace, v ast.Value) E {
	var zero E
	switch any(zero).(type) {
	case Float:
		return any(Float{proxyBase{t, v}}).(E)
	case Int:
		return any(Int{proxyBase{t, v}}).(E)
	case Uint:
		return any(Uint{proxyBase{t, v}}).(E)
	case Bool:
		return any(Bool{proxyBase{t, v}}).(E)
	case Vec:
		vt := v.Type().(*ast.VecType)
		return any(Vec{proxyBase{t, v}, vt.N, vt.Kind}).(E)
	default:
		panic("shadertrace: unsupported array/texture element kind")
	}
}
