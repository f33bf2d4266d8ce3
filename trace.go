package shadertrace

import (
	"fmt"
	"reflect"

	"github.com/gogpu/shadertrace/internal/ast"
)

// Stage identifies one shader phase within a pipeline.
type Stage = ast.Stage

const (
	StageVertex   = ast.Vertex
	StageFragment = ast.Fragment
	StageCompute  = ast.Compute
)

// scopeKind discriminates the construction-context priority list a
// default-constructed proxy consults (spec.md §4.3): which of the five
// meanings a bare proxy constructor call should take on.
type scopeKind uint8

const (
	scopeBody scopeKind = iota
	scopeInput
	scopeVectorComponent
	scopeAggregateMember
)

type scopeFrame struct {
	kind scopeKind
	// for scopeVectorComponent: the parent vector expression and arity.
	vecBase  ast.Value
	vecArity int
	vecKind  ast.Scalar
	// for scopeAggregateMember: the parent aggregate expression and the
	// next field index to attach.
	aggBase  ast.Value
	aggType  *ast.AggregateType
	aggIndex *int
}

// Trace is the per-compile parser context: it threads identity,
// ordering, and access-permission state through one pipeline's trace. A
// *Trace is created fresh by each CompileRasterPipeline/
// CompileComputePipeline call and passed explicitly into builder
// closures — Go has no ambient "current thread" the way the original
// engine's thread-local singleton does, so the context is carried as a
// plain parameter instead (see DESIGN.md, Open Question resolutions).
//
// A *Trace is not safe for concurrent use; each goroutine compiling a
// pipeline owns its own.
type Trace struct {
	structure ast.Structure

	stageStack [][]ast.Statement // the statement stack: index 0 is Locals, deeper entries are nested if/elif/else bodies
	scopeStack []scopeFrame

	bindless bool
	stage    Stage
	isOpen   bool // true while a stage parse is in progress

	localCounter   int
	globalCounter  int
	aggregateCounter int

	aggregateIdentities map[reflect.Type]*ast.AggregateType

	positionOutput       *ast.Variable
	dispatchThreadIDInput *ast.Variable

	results []StageOutput
}

// StageOutput is the captured result of one closed stage, ready for the
// emitter.
type StageOutput = ast.StageOutput

// NewTrace creates an empty parser context for one pipeline compile.
func NewTrace() *Trace {
	return &Trace{
		aggregateIdentities: make(map[reflect.Type]*ast.AggregateType),
	}
}

// Bindless reports whether this trace is running its bindless pass.
func (t *Trace) Bindless() bool { return t.bindless }

// SetBindless flips the bindless flag ahead of a second parse pass
// (spec.md §4.6 step 5).
func (t *Trace) SetBindless(b bool) { t.bindless = b }

// Stage returns the stage currently open for tracing.
func (t *Trace) Stage() Stage { return t.stage }

// BeginShaderParse flushes any still-open stage and begins tracing a new
// one, pushing the stage's local statement list onto the statement
// stack (spec.md §4.1).
func (t *Trace) BeginShaderParse(stage Stage) {
	t.flushStage()
	t.stage = stage
	t.isOpen = true
	t.structure.ResetStage()
	t.stageStack = [][]ast.Statement{nil}
	t.pushScope(scopeFrame{kind: scopeBody})
}

// flushStage closes whatever stage is open, if any, capturing its
// inputs/outputs/locals into t.results.
func (t *Trace) flushStage() {
	if !t.isOpen {
		return
	}
	out := StageOutput{Stage: t.stage, Locals: t.stageStack[0]}
	for _, st := range t.structure.Inputs {
		if d, ok := st.(*ast.DefineInput); ok {
			out.Inputs = append(out.Inputs, d.Var)
		}
	}
	for _, st := range t.structure.Outputs {
		if d, ok := st.(*ast.DefineOutput); ok {
			out.Outputs = append(out.Outputs, d.Var)
		}
	}
	t.results = append(t.results, out)
	t.isOpen = false
	t.scopeStack = nil
}

// EndPipelineParse flushes the open stage, resets the local-name counter,
// and returns the accumulated per-stage outputs in stage order
// (spec.md §4.1). Global statements keep their accumulated permissions
// so that the emitter and resource reflection run afterwards see which
// globals were read or written; each bindless/non-bindless pass traces
// into its own fresh Trace.
func (t *Trace) EndPipelineParse() []StageOutput {
	t.flushStage()
	results := t.results
	t.localCounter = 0
	t.results = nil
	return results
}

// Globals returns the accumulated global statement list (persists
// across stages of one pipeline).
func (t *Trace) Globals() []ast.Statement { return t.structure.Globals }

// --- name allocation ---

// NextLocalName allocates "var_N".
func (t *Trace) NextLocalName() string {
	t.localCounter++
	return fmt.Sprintf("var_%d", t.localCounter)
}

// NextGlobalName allocates "global_var_N".
func (t *Trace) NextGlobalName() string {
	t.globalCounter++
	return fmt.Sprintf("global_var_%d", t.globalCounter)
}

// NextAggregateName allocates "aggregate_type_N".
func (t *Trace) NextAggregateName() string {
	t.aggregateCounter++
	return fmt.Sprintf("aggregate_type_%d", t.aggregateCounter)
}

// --- statement stack ---

func (t *Trace) top() []ast.Statement {
	return t.stageStack[len(t.stageStack)-1]
}

func (t *Trace) setTop(stmts []ast.Statement) {
	t.stageStack[len(t.stageStack)-1] = stmts
}

// AppendLocal appends st to the innermost open statement list: the
// stage's top-level locals, or the body of whichever if/elif/else arm
// is currently open.
func (t *Trace) AppendLocal(st ast.Statement) {
	t.setTop(append(t.top(), st))
}

func (t *Trace) pushStatementList() {
	t.stageStack = append(t.stageStack, nil)
}

func (t *Trace) popStatementList() []ast.Statement {
	n := len(t.stageStack) - 1
	body := t.stageStack[n]
	t.stageStack = t.stageStack[:n]
	return body
}

// --- scope stack (construction-context priority list) ---

func (t *Trace) pushScope(f scopeFrame) { t.scopeStack = append(t.scopeStack, f) }
func (t *Trace) popScope()              { t.scopeStack = t.scopeStack[:len(t.scopeStack)-1] }

func (t *Trace) currentScope() scopeFrame {
	if len(t.scopeStack) == 0 {
		return scopeFrame{kind: scopeBody}
	}
	return t.scopeStack[len(t.scopeStack)-1]
}

// --- built-in singletons ---

// PositionOutput returns the lazily-realized SV_POSITION output
// variable, shared by every reference within one parse.
func (t *Trace) PositionOutput(vec4 ast.Type) *ast.Variable {
	if t.positionOutput == nil {
		t.positionOutput = &ast.Variable{Kind: ast.VarOutput, Name: "position", Typ: vec4, Semantic: "SV_POSITION"}
		t.structure.AppendOutput(&ast.DefineOutput{Var: t.positionOutput})
	}
	return t.positionOutput
}

// DispatchThreadIDInput returns the lazily-realized SV_DispatchThreadID
// input variable.
func (t *Trace) DispatchThreadIDInput(uvec3 ast.Type) *ast.Variable {
	if t.dispatchThreadIDInput == nil {
		t.dispatchThreadIDInput = &ast.Variable{Kind: ast.VarInput, Name: "dispatchThreadID", Typ: uvec3, Semantic: "SV_DispatchThreadID"}
		t.structure.AppendInput(&ast.DefineInput{Var: t.dispatchThreadIDInput})
	}
	return t.dispatchThreadIDInput
}
