package ast

// Structure holds the four ordered statement lists that make up one
// pipeline's trace: global declarations (persist across stages), and
// per-stage input/output/local statements (reset when a stage closes).
//
// Duplicates are permitted in any list; the emitter treats
// DefineAggregateType as already-interned (spec.md §3, "Structure
// container").
// Locals are owned by the parser's statement stack rather than this
// struct, since the innermost open if/elif/else arm also needs its own
// ordered list — see Trace.AppendLocal in the root package.
type Structure struct {
	Globals []Statement
	Inputs  []Statement
	Outputs []Statement
}

// AppendGlobal records a global statement in append order.
func (s *Structure) AppendGlobal(st Statement) { s.Globals = append(s.Globals, st) }

// AppendInput records a stage-input statement in append order.
func (s *Structure) AppendInput(st Statement) { s.Inputs = append(s.Inputs, st) }

// AppendOutput records a stage-output statement in append order.
func (s *Structure) AppendOutput(st Statement) { s.Outputs = append(s.Outputs, st) }

// ResetStage clears the per-stage lists, ready for the next stage. Globals
// and their counters are untouched (spec.md §4.1 reset()).
func (s *Structure) ResetStage() {
	s.Inputs = nil
	s.Outputs = nil
}

// ResetGlobalPermissions clears accumulated permissions on every global
// statement, so they can start a further parse pass with no accumulated
// access.
func (s *Structure) ResetGlobalPermissions() { ResetGlobalPermissions(s.Globals) }
