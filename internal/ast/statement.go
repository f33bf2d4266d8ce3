package ast

import "fmt"

// Statement is something with an effect in program order.
type Statement interface {
	Parse() string
}

// resettable is implemented by statements that own a global resource and
// must clear accumulated permissions between bindless/non-bindless parse
// passes (spec.md §3 invariant 6).
type resettable interface {
	ResetPermissions()
}

// ResetGlobalPermissions resets every statement in stmts that tracks
// access permissions, so the same statements can start a further parse
// pass with no accumulated access.
func ResetGlobalPermissions(stmts []Statement) {
	for _, s := range stmts {
		if r, ok := s.(resettable); ok {
			r.ResetPermissions()
		}
	}
}

// DefineLocal declares a local variable, with an optional initializer.
type DefineLocal struct {
	Var  *Variable
	Init Value // nil if uninitialized
}

func (s *DefineLocal) Parse() string {
	if s.Init == nil {
		return fmt.Sprintf("%s %s;", s.Var.Typ.SlangName(), s.Var.Name)
	}
	return fmt.Sprintf("%s %s = %s;", s.Var.Typ.SlangName(), s.Var.Name, s.Init.Parse())
}

// Assign is an lvalue = rvalue statement.
type Assign struct {
	LValue Value
	RValue Value
}

func (s *Assign) Parse() string {
	return fmt.Sprintf("%s = %s;", s.LValue.Parse(), s.RValue.Parse())
}

// UniversalStatement wraps a Value used only for its side effect — a
// post-increment, or a discarded void-returning call.
type UniversalStatement struct {
	Expr Value
}

func (s *UniversalStatement) Parse() string { return s.Expr.Parse() + ";" }

// DefineInput declares a stage input.
type DefineInput struct {
	Var *Variable
}

func (s *DefineInput) Parse() string { return "" } // inputs are declared via the stage's input struct, not inline

// DefineOutput declares a stage output.
type DefineOutput struct {
	Var *Variable
}

func (s *DefineOutput) Parse() string { return "" } // outputs are declared via the stage's output struct, not inline

// DefineUniform declares a global uniform (push-constant or UBO member).
type DefineUniform struct {
	Var *Variable
}

func (s *DefineUniform) Parse() string {
	if s.Var.Permissions() == None {
		return ""
	}
	return fmt.Sprintf("%s %s;", s.Var.Typ.SlangName(), s.Var.Name)
}

func (s *DefineUniform) ResetPermissions() { s.Var.resetPermissions() }

// DefineUniversalArray declares a global StructuredBuffer/RWStructuredBuffer.
type DefineUniversalArray struct {
	Var *Variable
	Typ *ArrayType
}

func (s *DefineUniversalArray) Parse() string {
	if s.Var.Permissions() == None {
		return ""
	}
	return fmt.Sprintf("%s %s;", s.Typ.SlangName(), s.Var.Name)
}

func (s *DefineUniversalArray) ResetPermissions() {
	s.Var.resetPermissions()
	s.Typ.resetPermissions()
}

// DefineUniversalTexture2D declares a global Texture2D/RWTexture2D.
type DefineUniversalTexture2D struct {
	Var *Variable
	Typ *Texture2DType
}

func (s *DefineUniversalTexture2D) Parse() string {
	if s.Var.Permissions() == None {
		return ""
	}
	return fmt.Sprintf("%s %s;", s.Typ.SlangName(), s.Var.Name)
}

func (s *DefineUniversalTexture2D) ResetPermissions() {
	s.Var.resetPermissions()
	s.Typ.resetPermissions()
}

// DefineAggregateType declares a struct. Interned: only the first
// occurrence of a given host aggregate identity appends one of these.
type DefineAggregateType struct {
	Typ *AggregateType
}

func (s *DefineAggregateType) Parse() string {
	rw := s.Typ.HasWrite()
	out := fmt.Sprintf("struct %s\n{\n", s.Typ.Name)
	for _, m := range s.Typ.Members {
		prefix := ""
		if rw {
			switch m.Type.(type) {
			case *ArrayType, *Texture2DType:
				prefix = "RW"
			}
		}
		name := m.Type.SlangName()
		if prefix != "" {
			name = stripRWIfPresent(name)
			name = prefix + name
		}
		out += fmt.Sprintf("    %s %s;\n", name, m.Name)
	}
	return out + "};"
}

func (s *DefineAggregateType) ResetPermissions() { s.Typ.resetPermissions() }

func stripRWIfPresent(s string) string {
	if len(s) >= 2 && s[:2] == "RW" {
		return s[2:]
	}
	return s
}

// DefineSystemSemanticVariable declares a built-in semantic variable,
// e.g. SV_POSITION or SV_DispatchThreadID.
type DefineSystemSemanticVariable struct {
	Var *Variable
}

func (s *DefineSystemSemanticVariable) Parse() string { return "" }

// --- control flow ---

// If is an if/elif/else chain head. Elifs and Else are optional.
type If struct {
	Condition Value
	Body      []Statement
	Elifs     []*Elif
	Else      *Else
}

func (s *If) Parse() string {
	out := fmt.Sprintf("if (%s) {\n", s.Condition.Parse())
	out += indentStatements(s.Body)
	out += "}"
	for _, e := range s.Elifs {
		out += " " + e.Parse()
	}
	if s.Else != nil {
		out += " " + s.Else.Parse()
	}
	return out
}

// Elif is one "else if" arm.
type Elif struct {
	Condition Value
	Body      []Statement
}

func (s *Elif) Parse() string {
	out := fmt.Sprintf("else if (%s) {\n", s.Condition.Parse())
	out += indentStatements(s.Body)
	return out + "}"
}

// Else is the terminal "else" arm.
type Else struct {
	Body []Statement
}

func (s *Else) Parse() string {
	out := "else {\n"
	out += indentStatements(s.Body)
	return out + "}"
}

func indentStatements(stmts []Statement) string {
	out := ""
	for _, st := range stmts {
		text := st.Parse()
		if text == "" {
			continue
		}
		out += "    " + text + "\n"
	}
	return out
}
