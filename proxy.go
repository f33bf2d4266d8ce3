package shadertrace

import (
	"fmt"

	"github.com/gogpu/shadertrace/internal/ast"
)

// Proxy is implemented by every typed host-language value whose
// operations record AST nodes instead of computing (spec.md GLOSSARY).
// It is the common shape scalar, vector, matrix, aggregate, array, and
// texture proxies all share.
type Proxy interface {
	trace() *Trace
	value() ast.Value
}

// proxyBase is embedded by every concrete proxy type: the owning Trace
// (Go's substitute for the original engine's ambient thread-local
// context — see DESIGN.md) plus the AST value the proxy wraps.
type proxyBase struct {
	t *Trace
	v ast.Value
}

func (p proxyBase) trace() *Trace  { return p.t }
func (p proxyBase) value() ast.Value { return p.v }

// newProxyValue implements the five-way construction-context contract
// from spec.md §4.3: a bare proxy constructor call consults the owning
// trace's current scope to decide what kind of AST value it should
// create. typ is the proxy's logical Type. Value-construction from a
// host literal is handled by fromLiteral below, not here.
func newProxyValue(t *Trace, typ ast.Type) ast.Value {
	scope := t.currentScope()
	switch scope.kind {
	case scopeVectorComponent:
		idx := *scope.aggIndex
		*scope.aggIndex++
		name := componentName(idx)
		return t.Member(scope.vecBase, name, typ)
	case scopeAggregateMember:
		idx := *scope.aggIndex
		*scope.aggIndex++
		m := scope.aggType.Members[idx]
		return t.Member(scope.aggBase, m.Name, m.Type)
	case scopeInput:
		return t.DefineInputVariate(typ, nextInputLocation(t))
	default:
		if t.isOpen {
			return t.DefineLocalVariate(typ, nil)
		}
		return t.DefineUniformVariate(typ, false)
	}
}

// nextInputLocation assigns sequential input locations within the
// currently open input-construction scope.
func nextInputLocation(t *Trace) int {
	n := 0
	for _, st := range t.structure.Inputs {
		if _, ok := st.(*ast.DefineInput); ok {
			n++
		}
	}
	return n
}

func componentName(i int) string {
	switch i {
	case 0:
		return "x"
	case 1:
		return "y"
	case 2:
		return "z"
	case 3:
		return "w"
	default:
		panic(fmt.Sprintf("shadertrace: component index %d out of range", i))
	}
}

// fromLiteral materializes a new local initialized to a host literal's
// textual constructor expression (inside a shader body), or a new
// uniform (at global scope) — the "value-construction from a host
// literal" contract in spec.md §4.3. The uniform has no initializer: at
// global scope the literal text is not recorded.
func fromLiteral(t *Trace, typ ast.Type, text string) ast.Value {
	lit := &ast.Literal{Typ: typ, Text: text}
	if t.isOpen {
		v := t.DefineLocalVariate(typ, lit)
		return v
	}
	return t.DefineUniformVariate(typ, false)
}

// fromCopy materializes a new local initialized to src's expression —
// the "copy-construction from another proxy" contract in spec.md §4.3.
func fromCopy(t *Trace, src ast.Value) ast.Value {
	return t.DefineLocalVariate(src.Type(), src)
}
