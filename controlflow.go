package shadertrace

import "github.com/gogpu/shadertrace/internal/ast"

// If is a lexical scope guard for one if/elif/else chain. The user
// opens it with BeginIf, issues BeginElif/BeginElse for subsequent arms,
// and finishes with EndIf. Each arm pushes its own nested statement
// list onto the trace's statement stack; every statement recorded while
// an arm is open is nested inside that arm (spec.md §4.4 discipline).
//
// Implemented as an explicit guard object rather than RAII (Go has no
// destructors): the contract is explicit Begin/End pairing, matching
// spec.md §9's restatement for languages without scope-exit hooks. Arms
// may be re-entered on independent dynamic passes (e.g. the bindless
// re-trace) by issuing a fresh BeginIf/EndIf sequence each time.
type If struct {
	t      *Trace
	cond   ast.Value
	ifBody []ast.Statement
	ifBodySet bool

	pendingElifCond ast.Value
	elifs           []*ast.Elif

	inElse bool
	els    *ast.Else
}

// BeginIf opens an if-chain's first arm.
func (t *Trace) BeginIf(cond ast.Value) *If {
	accumulate(cond, ast.Read)
	t.pushStatementList()
	return &If{t: t, cond: cond}
}

// closeArm captures the body of whatever arm was just popped and
// attaches it to the right slot: the if-body on the first call, or an
// elif on subsequent calls (keyed by the elif condition recorded when
// that arm was opened).
func (c *If) closeArm(body []ast.Statement) {
	if !c.ifBodySet {
		c.ifBody = body
		c.ifBodySet = true
		return
	}
	c.elifs = append(c.elifs, &ast.Elif{Condition: c.pendingElifCond, Body: body})
}

// BeginElif closes the previously open arm and opens an "else if" arm.
func (c *If) BeginElif(cond ast.Value) {
	accumulate(cond, ast.Read)
	c.closeArm(c.t.popStatementList())
	c.pendingElifCond = cond
	c.t.pushStatementList()
}

// BeginElse closes the previously open arm and opens the terminal else.
func (c *If) BeginElse() {
	c.closeArm(c.t.popStatementList())
	c.pendingElifCond = nil
	c.inElse = true
	c.t.pushStatementList()
}

// EndIf closes the currently open arm and appends the complete
// if/elif/else chain to the enclosing statement list.
func (c *If) EndIf() {
	body := c.t.popStatementList()
	if c.inElse {
		c.els = &ast.Else{Body: body}
	} else {
		c.closeArm(body)
	}
	c.t.AppendLocal(&ast.If{
		Condition: c.cond,
		Body:      c.ifBody,
		Elifs:     c.elifs,
		Else:      c.els,
	})
}
