package shadertrace

import (
	"fmt"
	"reflect"

	"github.com/gogpu/shadertrace/internal/ast"
)

// Aggregate is a proxy over a host struct type T whose exported fields
// are themselves proxies. Fields of type Float, Int, Uint, Bool, and Vec
// (always float4) become struct members; fields of any other type,
// including Mat, Array[E], Texture2D[E], and nested Aggregates, are
// skipped. Repeated construction with the same Go type T
// reuses one interned AST struct (spec.md §3, "Type taxonomy").
//
// T's fields are enumerated once via reflect.TypeOf and cached per Trace
// by host type identity — the structural-reflection capability spec.md
// §1 treats as an external boundary the implementation must provide;
// Go's standard reflect package is that provider (no third-party
// reflection library exists in the example corpus for this purpose).
type Aggregate[T any] struct {
	proxyBase
	fields T
}

// NewAggregate default-constructs an Aggregate[T] proxy. If the trace is
// in shader-body tracing, it becomes a new local; at global scope it
// becomes a new uniform (construction-context priority 4/5, since
// aggregates are never themselves vector components or input
// parameters at the top level — spec.md §4.3).
//
// It first interns T's AST struct type by reflecting over T's exported
// fields: each supported field's Type is derived from that field's Go
// proxy type, and the result is cached so repeated construction of
// the same T reuses one generated struct name.
func NewAggregate[T any](t *Trace) Aggregate[T] {
	typ := internAggregate[T](t)
	val := newProxyValue(t, typ)
	fields := attachAggregateFields[T](t, val, typ)
	return Aggregate[T]{proxyBase{t, val}, fields}
}

// Fields returns the host struct of field proxies, each already wired to
// the correct member-access AST node.
func (a Aggregate[T]) Fields() T { return a.fields }

func (a Aggregate[T]) Value() ast.Value { return a.v }

// Assign records an assignment of one whole aggregate expression to
// another: "lhs = rhs;".
func (a Aggregate[T]) Assign(rhs Aggregate[T]) { a.t.Assign(a.v, rhs.v) }

func internAggregate[T any](t *Trace) *ast.AggregateType {
	var zero T
	rt := reflect.TypeOf(zero)
	if existing, ok := t.aggregateIdentities[rt]; ok {
		return existing
	}
	members := reflectMembers(t, rt)
	return t.CreateAggregateType(rt, members)
}

// reflectMembers enumerates rt's exported fields and derives each one's
// AST Type from its Go type via zeroFieldType. Only fields whose type
// zeroFieldType recognises are included; any other field is skipped
// without an error.
func reflectMembers(t *Trace, rt reflect.Type) []ast.Field {
	if rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("shadertrace: aggregate type %s is not a struct", rt))
	}
	members := make([]ast.Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		typ, ok := zeroFieldType(f.Type)
		if !ok {
			continue
		}
		members = append(members, ast.Field{Name: f.Name, Type: typ})
	}
	return members
}

// zeroFieldType maps a Go field type to the ast.Type it produces as a
// shader aggregate member, by a type switch over Float, Int, Uint, Bool,
// and Vec; it reports false for every other field type.
func zeroFieldType(ft reflect.Type) (ast.Type, bool) {
	switch ft {
	case reflect.TypeOf(Float{}):
		return floatType, true
	case reflect.TypeOf(Int{}):
		return intType, true
	case reflect.TypeOf(Uint{}):
		return uintType, true
	case reflect.TypeOf(Bool{}):
		return boolType, true
	}
	switch ft.Kind() {
	case reflect.Struct:
		if ft == reflect.TypeOf(Vec{}) {
			// The zero value of Vec carries no arity/kind of its own;
			// aggregate fields default to float4, matching the common
			// vertex-output case (position/color/normal channels).
			// No other vector shape is available as an aggregate field.
			return vecType(ast.ScalarFloat, 4), true
		}
	}
	return nil, false
}

// attachAggregateFields walks typ's interned member list and builds a
// struct value of T whose fields are proxies wired to member-access
// nodes against val — the "aggregate proxies ... open an aggregate-
// member scope around their default-constructed fields so that nested
// proxy fields auto-attach" contract (spec.md §4.3).
func attachAggregateFields[T any](t *Trace, val ast.Value, typ *ast.AggregateType) T {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	idx := 0
	t.pushScope(scopeFrame{kind: scopeAggregateMember, aggBase: val, aggType: typ, aggIndex: &idx})
	defer t.popScope()

	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Type() {
		case reflect.TypeOf(Float{}):
			f.Set(reflect.ValueOf(NewFloat(t)))
		case reflect.TypeOf(Int{}):
			f.Set(reflect.ValueOf(NewInt(t)))
		case reflect.TypeOf(Uint{}):
			f.Set(reflect.ValueOf(NewUint(t)))
		case reflect.TypeOf(Bool{}):
			f.Set(reflect.ValueOf(NewBool(t)))
		case reflect.TypeOf(Vec{}):
			f.Set(reflect.ValueOf(NewVec4(t)))
		}
	}
	return out
}
