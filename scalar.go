package shadertrace

import (
	"fmt"

	"github.com/gogpu/shadertrace/internal/ast"
)

var (
	floatType = &ast.BasicType{Kind: ast.ScalarFloat}
	intType   = &ast.BasicType{Kind: ast.ScalarInt}
	uintType  = &ast.BasicType{Kind: ast.ScalarUint}
	boolType  = &ast.BasicType{Kind: ast.ScalarBool}
)

// Float is a scalar float proxy.
type Float struct{ proxyBase }

// NewFloat default-constructs a Float proxy per the five-way
// construction-context priority list (spec.md §4.3).
func NewFloat(t *Trace) Float {
	return Float{proxyBase{t, newProxyValue(t, floatType)}}
}

// FloatLiteral materializes a compile-time float constant.
func FloatLiteral(t *Trace, v float32) Float {
	return Float{proxyBase{t, fromLiteral(t, floatType, fmt.Sprintf("%g", v))}}
}

// Copy materializes a new local initialized to f's current expression.
func (f Float) Copy() Float { return Float{proxyBase{f.t, fromCopy(f.t, f.v)}} }

func (f Float) Add(rhs Float) Float { return f.binOp(rhs, "+") }
func (f Float) Sub(rhs Float) Float { return f.binOp(rhs, "-") }
func (f Float) Mul(rhs Float) Float { return f.binOp(rhs, "*") }
func (f Float) Div(rhs Float) Float { return f.binOp(rhs, "/") }

func (f Float) binOp(rhs Float, op string) Float {
	return Float{proxyBase{f.t, f.t.BinaryOperator(f.v, rhs.v, op, nil)}}
}

func (f Float) cmp(rhs Float, op string) Bool {
	return Bool{proxyBase{f.t, f.t.BinaryOperator(f.v, rhs.v, op, boolType)}}
}

func (f Float) Eq(rhs Float) Bool { return f.cmp(rhs, "==") }
func (f Float) Ne(rhs Float) Bool { return f.cmp(rhs, "!=") }
func (f Float) Lt(rhs Float) Bool { return f.cmp(rhs, "<") }
func (f Float) Le(rhs Float) Bool { return f.cmp(rhs, "<=") }
func (f Float) Gt(rhs Float) Bool { return f.cmp(rhs, ">") }
func (f Float) Ge(rhs Float) Bool { return f.cmp(rhs, ">=") }

func (f Float) Neg() Float {
	return Float{proxyBase{f.t, f.t.UnaryOperator(f.v, "-", true, ast.Read)}}
}

// Assign records an assignment statement "f = rhs;". Assignment never
// mutates the host proxy value — it only emits an AST statement
// (spec.md §4.3).
func (f Float) Assign(rhs Float) { f.t.Assign(f.v, rhs.v) }

// Inc records "f++;" immediately as a statement. The original engine
// defers this recording to the destruction of the last reference to the
// expression (RAII universal-statement deferral); Go has no destructors,
// so this module records the statement eagerly at the call site instead
// — functionally equivalent, since nothing Go-observable can discard the
// expression before the statement is appended (DESIGN.md, Open Question
// resolutions).
func (f Float) Inc() Float {
	expr := f.t.UnaryOperator(f.v, "++", false, ast.ReadWrite)
	f.t.UniversalStatement(expr)
	return Float{proxyBase{f.t, expr}}
}

// Dec records "f--;" immediately, mirroring Inc.
func (f Float) Dec() Float {
	expr := f.t.UnaryOperator(f.v, "--", false, ast.ReadWrite)
	f.t.UniversalStatement(expr)
	return Float{proxyBase{f.t, expr}}
}

// Value exposes the underlying AST node for callers composing
// expressions across proxy types (e.g. texture sampling, aggregate
// member assembly).
func (f Float) Value() ast.Value { return f.v }

// Int is a scalar signed-integer proxy.
type Int struct{ proxyBase }

func NewInt(t *Trace) Int { return Int{proxyBase{t, newProxyValue(t, intType)}} }
func IntLiteral(t *Trace, v int32) Int {
	return Int{proxyBase{t, fromLiteral(t, intType, fmt.Sprintf("%d", v))}}
}
func (i Int) Value() ast.Value { return i.v }
func (i Int) Add(rhs Int) Int  { return Int{proxyBase{i.t, i.t.BinaryOperator(i.v, rhs.v, "+", nil)}} }
func (i Int) Sub(rhs Int) Int  { return Int{proxyBase{i.t, i.t.BinaryOperator(i.v, rhs.v, "-", nil)}} }
func (i Int) Mul(rhs Int) Int  { return Int{proxyBase{i.t, i.t.BinaryOperator(i.v, rhs.v, "*", nil)}} }
func (i Int) Assign(rhs Int)   { i.t.Assign(i.v, rhs.v) }

// Uint is a scalar unsigned-integer proxy, used for dispatch-thread IDs
// and array indices.
type Uint struct{ proxyBase }

func NewUint(t *Trace) Uint { return Uint{proxyBase{t, newProxyValue(t, uintType)}} }
func UintLiteral(t *Trace, v uint32) Uint {
	return Uint{proxyBase{t, fromLiteral(t, uintType, fmt.Sprintf("%d", v))}}
}
func (u Uint) Value() ast.Value { return u.v }
func (u Uint) Add(rhs Uint) Uint {
	return Uint{proxyBase{u.t, u.t.BinaryOperator(u.v, rhs.v, "+", nil)}}
}

// Bool is a scalar boolean proxy, produced by comparisons and consumed
// by control-flow conditions.
type Bool struct{ proxyBase }

func NewBool(t *Trace) Bool { return Bool{proxyBase{t, newProxyValue(t, boolType)}} }
func BoolLiteral(t *Trace, v bool) Bool {
	text := "false"
	if v {
		text = "true"
	}
	return Bool{proxyBase{t, fromLiteral(t, boolType, text)}}
}
func (b Bool) Value() ast.Value { return b.v }
func (b Bool) And(rhs Bool) Bool {
	return Bool{proxyBase{b.t, b.t.BinaryOperator(b.v, rhs.v, "&&", boolType)}}
}
func (b Bool) Or(rhs Bool) Bool {
	return Bool{proxyBase{b.t, b.t.BinaryOperator(b.v, rhs.v, "||", boolType)}}
}
func (b Bool) Not() Bool {
	return Bool{proxyBase{b.t, b.t.UnaryOperator(b.v, "!", true, ast.Read)}}
}
func (b Bool) Assign(rhs Bool) { b.t.Assign(b.v, rhs.v) }
