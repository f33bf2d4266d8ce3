package ast

import (
	"fmt"
)

// Scalar is a basic shader scalar kind.
type Scalar uint8

const (
	ScalarFloat Scalar = iota
	ScalarInt
	ScalarUint
	ScalarBool
)

// slangName is the Slang spelling of a scalar, grounded on
// original_source/Src/Codegen/TypeAlias.h's scalar aliases.
func (s Scalar) slangName() string {
	switch s {
	case ScalarFloat:
		return "float"
	case ScalarInt:
		return "int"
	case ScalarUint:
		return "uint"
	case ScalarBool:
		return "bool"
	default:
		return "float"
	}
}

// Type is the common interface for every AST type node: basic scalars,
// vectors, matrices, aggregates, arrays, textures, and samplers.
type Type interface {
	// SlangName renders the type's declaration-site spelling, e.g.
	// "float3", "float4x4", "aggregate_type_2", "Texture2D<float4>".
	SlangName() string
}

// BasicType is a scalar type (float, int, uint, bool).
type BasicType struct {
	Kind Scalar
}

func (t *BasicType) SlangName() string { return t.Kind.slangName() }

// VecType is an N-component vector of a scalar type.
type VecType struct {
	Kind Scalar
	N    int // 2, 3, or 4
}

func (t *VecType) SlangName() string {
	return fmt.Sprintf("%s%d", t.Kind.slangName(), t.N)
}

// MatType is an R×C matrix of a scalar type (normally float).
type MatType struct {
	Kind    Scalar
	Rows    int
	Columns int
}

func (t *MatType) SlangName() string {
	return fmt.Sprintf("%s%dx%d", t.Kind.slangName(), t.Rows, t.Columns)
}

// Field is one member of an AggregateType, in declaration order.
type Field struct {
	Name string
	Type Type
}

// AggregateType is a named struct, interned per host aggregate identity:
// repeated traces of the same host struct type reuse the same AST node
// and generated name (spec.md §3, "Type taxonomy").
type AggregateType struct {
	permBits
	Name    string
	Members []Field
}

func (t *AggregateType) SlangName() string { return t.Name }

// HasWrite reports whether any access recorded against this aggregate
// (as a uniform, or through a member reference) included Write, which
// controls whether its array/texture members emit with the RW prefix.
func (t *AggregateType) HasWrite() bool { return t.Permissions().Has(Write) }

// ArrayType is an array of element type T. Spec.md calls this
// "array-of-T"; emission renders it as RWStructuredBuffer<T> or
// StructuredBuffer<T> depending on accumulated permission.
type ArrayType struct {
	permBits
	Element Type
}

func (t *ArrayType) SlangName() string {
	if t.Permissions().Has(Write) {
		return fmt.Sprintf("RWStructuredBuffer<%s>", t.Element.SlangName())
	}
	return fmt.Sprintf("StructuredBuffer<%s>", t.Element.SlangName())
}

// Texture2DType is a 2D texture of texel type T.
type Texture2DType struct {
	permBits
	Texel Type
}

func (t *Texture2DType) SlangName() string {
	if t.Permissions().Has(Write) {
		return fmt.Sprintf("RWTexture2D<%s>", t.Texel.SlangName())
	}
	return fmt.Sprintf("Texture2D<%s>", t.Texel.SlangName())
}

// SamplerType is a sampler-state resource.
type SamplerType struct{}

func (t *SamplerType) SlangName() string { return "SamplerState" }

// Swizzle returns the vector type produced by selecting n components
// (2, 3, or 4) of scalar kind k — used by member access that represents
// a swizzle expression.
func Swizzle(k Scalar, n int) *VecType { return &VecType{Kind: k, N: n} }

// ValidSwizzle reports whether s is a well-formed swizzle string over
// {x,y,z,w}, with every letter index within the source vector's arity.
func ValidSwizzle(s string, srcArity int) bool {
	if len(s) < 1 || len(s) > 4 {
		return false
	}
	idx := map[byte]int{'x': 0, 'y': 1, 'z': 2, 'w': 3}
	for i := 0; i < len(s); i++ {
		c, ok := idx[s[i]]
		if !ok || c >= srcArity {
			return false
		}
	}
	return true
}
