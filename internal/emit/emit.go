// Package emit serializes a traced AST into a syntactically valid Slang
// translation unit: per-stage entry points plus a shared globals block
// (struct types, parameter blocks, push-constant blocks), grounded on
// original_source/Src/Codegen/Generator/SlangGenerator.cpp.
package emit

import (
	"fmt"
	"strings"

	"github.com/gogpu/shadertrace/internal/ast"
)

// NumThreads is the compute entry point's [numthreads(x,y,z)] tuple.
type NumThreads struct{ X, Y, Z int }

// DefaultNumThreads is the reset value applied after each compute
// emission (spec.md §4.6: "reset to (1,1,1) after each emission").
var DefaultNumThreads = NumThreads{1, 1, 1}

// Emitter walks one pipeline's traced statement lists and produces Slang
// source text. An Emitter is stateful across one EmitGlobals call (the
// uboMembers/pushConstantMembers/parameterBlockMembers buffers) but
// carries no state between pipelines — callers create a fresh Emitter
// per pipeline compile.
type Emitter struct {
	Bindless   bool
	NumThreads NumThreads

	uboMembers           []string
	pushConstantMembers  []string
	parameterBlockMembers []string
}

// New creates an Emitter for one pipeline compile.
func New(bindless bool) *Emitter {
	return &Emitter{Bindless: bindless, NumThreads: DefaultNumThreads}
}

// EmitStage renders one stage's complete translation unit: the input
// struct (if any), the output struct (if any), and the entry-point
// function (spec.md §4.5, "Stage emission").
func (e *Emitter) EmitStage(out ast.StageOutput) string {
	var b strings.Builder

	stageName := out.Stage.String()

	var mainBody strings.Builder
	for _, st := range out.Locals {
		text := st.Parse()
		if text == "" {
			continue
		}
		mainBody.WriteString("\t" + text + "\n")
	}

	inputStructName := ""
	if len(out.Inputs) > 0 {
		inputStructName = stageName + "_input"
		b.WriteString(e.renderInterfaceStruct(inputStructName, out.Inputs, false))
	}

	outputStructName := "void"
	if len(out.Outputs) > 0 {
		outputStructName = stageName + "_output"
		b.WriteString(e.renderInterfaceStruct(outputStructName, out.Outputs, out.Stage == ast.Fragment))
	}

	b.WriteString(fmt.Sprintf("[shader(%q)]\n", stageName))
	if out.Stage == ast.Compute {
		b.WriteString(fmt.Sprintf("[numthreads(%d,%d,%d)]\n", e.NumThreads.X, e.NumThreads.Y, e.NumThreads.Z))
		e.NumThreads = DefaultNumThreads
	}

	b.WriteString(outputStructName + " main(")
	if inputStructName != "" {
		b.WriteString(inputStructName + " input")
	}
	b.WriteString(") {\n")
	if outputStructName != "void" {
		b.WriteString("\t" + outputStructName + " output;\n")
	}
	b.WriteString(mainBody.String())
	if outputStructName != "void" {
		b.WriteString("\treturn output;\n")
	}
	b.WriteString("}\n")

	return b.String()
}

// renderInterfaceStruct builds a stage input/output struct. Fragment
// outputs use SV_TARGETn semantics; everything else uses LOCATIONn,
// except system-semantic variables (SV_POSITION, SV_DispatchThreadID)
// which use their fixed semantic directly (spec.md §4.5 step 2/3).
func (e *Emitter) renderInterfaceStruct(name string, vars []*ast.Variable, fragmentOutput bool) string {
	var b strings.Builder
	b.WriteString("struct " + name + " {\n")
	loc := 0
	for _, v := range vars {
		semantic := v.Semantic
		if semantic == "" {
			if fragmentOutput {
				semantic = fmt.Sprintf("SV_TARGET%d", loc)
			} else {
				semantic = fmt.Sprintf("LOCATION%d", loc)
			}
			loc++
		}
		b.WriteString(fmt.Sprintf("\t%s %s : %s;\n", v.Typ.SlangName(), v.Name, semantic))
	}
	b.WriteString("}\n")
	return b.String()
}

// PrependGlobals assembles each per-stage source with the shared
// globals block in front, mirroring EndPipelineParse's contract of
// "prepends it to each per-stage output" (spec.md §4.1).
func PrependGlobals(globalSrc string, stageSrcs []string) []string {
	out := make([]string, len(stageSrcs))
	for i, s := range stageSrcs {
		out[i] = globalSrc + s
	}
	return out
}
