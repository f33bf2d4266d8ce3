package shadertrace

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gogpu/shadertrace/internal/ast"
	"github.com/gogpu/shadertrace/internal/backend"
	"github.com/gogpu/shadertrace/internal/cache"
	"github.com/gogpu/shadertrace/internal/emit"
	igpucore "github.com/gogpu/shadertrace/internal/gpucore"
)

// StageArtifacts is one stage's compiled output across every requested
// target language, paired with its reflection record (spec.md §6).
type StageArtifacts struct {
	Targets   map[backend.Target]backend.Artifact
	Resources ShaderResources
}

// GetShaderCode returns the compiled artifact for target, or
// ErrCacheMiss if that target was never requested for this compile.
func (s StageArtifacts) GetShaderCode(target backend.Target) (backend.Artifact, ShaderResources, error) {
	a, ok := s.Targets[target]
	if !ok {
		return backend.Artifact{}, ShaderResources{}, fmt.Errorf("shadertrace: target %s: %w", target, ErrCacheMiss)
	}
	return a, s.Resources, nil
}

// PipelineStage holds a stage's standard compile, plus its bindless
// recompile when CompilerOption.EnableBindless is set (spec.md §4.6 step
// 5: a second, independent parse-and-emit pass with the bindless
// descriptor-indexing prelude).
type PipelineStage struct {
	Standard StageArtifacts
	Bindless *StageArtifacts
}

// GetShaderCode selects the standard or bindless compile of this stage
// before delegating to StageArtifacts.GetShaderCode.
func (p PipelineStage) GetShaderCode(target backend.Target, bindless bool) (backend.Artifact, ShaderResources, error) {
	if bindless {
		if p.Bindless == nil {
			return backend.Artifact{}, ShaderResources{}, fmt.Errorf("shadertrace: bindless pass not compiled: %w", ErrCacheMiss)
		}
		return p.Bindless.GetShaderCode(target)
	}
	return p.Standard.GetShaderCode(target)
}

// RasterPipeline is the compiled result of one vertex+fragment pipeline.
type RasterPipeline struct {
	Vertex   PipelineStage
	Fragment PipelineStage
}

// ComputePipeline is the compiled result of one compute pipeline.
type ComputePipeline struct {
	Compute PipelineStage
}

// CompileRasterPipeline traces vertex and fragment with a shared Trace,
// checks their interface agreement, emits Slang source for each stage,
// and dispatches every requested target through options.Dispatcher
// (spec.md §4.6). If options.EnableBindless is set, the whole trace runs
// a second time with bindless descriptor indexing (spec.md §4.6 step 5).
func CompileRasterPipeline(vertex, fragment func(*Trace), options CompilerOption) (*RasterPipeline, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}

	callerFile, callerLine := callSite()

	standardVertex, standardFragment, err := traceAndEmitRaster(vertex, fragment, options, false, callerFile, callerLine)
	if err != nil {
		return nil, err
	}

	result := &RasterPipeline{
		Vertex:   PipelineStage{Standard: standardVertex},
		Fragment: PipelineStage{Standard: standardFragment},
	}

	if options.EnableBindless {
		bindlessVertex, bindlessFragment, err := traceAndEmitRaster(vertex, fragment, options, true, callerFile, callerLine)
		if err != nil {
			return nil, err
		}
		result.Vertex.Bindless = &bindlessVertex
		result.Fragment.Bindless = &bindlessFragment
	}

	return result, nil
}

func traceAndEmitRaster(vertex, fragment func(*Trace), options CompilerOption, bindless bool, callerFile string, callerLine int) (StageArtifacts, StageArtifacts, error) {
	t := NewTrace()
	t.SetBindless(bindless)

	t.BeginShaderParse(StageVertex)
	vertex(t)
	t.BeginShaderParse(StageFragment)
	fragment(t)
	stages := t.EndPipelineParse()
	vertexOut, fragmentOut := stages[0], stages[1]

	if err := checkInterface(vertexOut, fragmentOut); err != nil {
		return StageArtifacts{}, StageArtifacts{}, err
	}

	resources := reflectResources(t.Globals(), bindless)

	vertexArtifacts, err := emitAndDispatch(t, vertexOut, resources, options, bindless, callerFile, callerLine, "vertex")
	if err != nil {
		return StageArtifacts{}, StageArtifacts{}, err
	}
	fragmentArtifacts, err := emitAndDispatch(t, fragmentOut, resources, options, bindless, callerFile, callerLine, "fragment")
	if err != nil {
		return StageArtifacts{}, StageArtifacts{}, err
	}

	return vertexArtifacts, fragmentArtifacts, nil
}

// CompileComputePipeline traces a single compute stage and dispatches it
// the same way CompileRasterPipeline does. numthreads sets the emitted
// [numthreads(x,y,z)] tuple; it is consulted once per emission and reset
// to (1,1,1) afterward by the emitter (spec.md §4.6).
func CompileComputePipeline(compute func(*Trace), numthreads [3]int, options CompilerOption, adapter igpucore.GPUAdapter) (*ComputePipeline, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	if err := validateNumThreads(numthreads, adapter); err != nil {
		return nil, err
	}

	callerFile, callerLine := callSite()

	standard, err := traceAndEmitCompute(compute, numthreads, options, false, callerFile, callerLine)
	if err != nil {
		return nil, err
	}

	result := &ComputePipeline{Compute: PipelineStage{Standard: standard}}

	if options.EnableBindless {
		bindless, err := traceAndEmitCompute(compute, numthreads, options, true, callerFile, callerLine)
		if err != nil {
			return nil, err
		}
		result.Compute.Bindless = &bindless
	}

	return result, nil
}

func traceAndEmitCompute(compute func(*Trace), numthreads [3]int, options CompilerOption, bindless bool, callerFile string, callerLine int) (StageArtifacts, error) {
	t := NewTrace()
	t.SetBindless(bindless)

	t.BeginShaderParse(StageCompute)
	compute(t)
	stages := t.EndPipelineParse()
	computeOut := stages[0]

	if len(computeOut.Outputs) != 0 {
		return StageArtifacts{}, ErrNonVoidComputeReturn
	}

	resources := reflectResources(t.Globals(), bindless)

	e := emit.New(bindless)
	e.NumThreads = emit.NumThreads{X: numthreads[0], Y: numthreads[1], Z: numthreads[2]}
	return emitAndDispatchWith(e, t, computeOut, resources, options, bindless, callerFile, callerLine, "compute")
}

// checkInterface enforces spec.md §4.6's vertex/fragment agreement rule:
// the fragment stage's inputs must line up, slot for slot, with the
// vertex stage's outputs.
func checkInterface(vertexOut, fragmentOut ast.StageOutput) error {
	if len(vertexOut.Outputs) != len(fragmentOut.Inputs) {
		return ErrInterfaceMismatch
	}
	for i, out := range vertexOut.Outputs {
		in := fragmentOut.Inputs[i]
		if out.Typ.SlangName() != in.Typ.SlangName() {
			return fmt.Errorf("%w: slot %d: vertex output %s, fragment input %s", ErrInterfaceMismatch, i, out.Typ.SlangName(), in.Typ.SlangName())
		}
	}
	return nil
}

func emitAndDispatch(t *Trace, out ast.StageOutput, resources ShaderResources, options CompilerOption, bindless bool, callerFile string, callerLine int, stageName string) (StageArtifacts, error) {
	e := emit.New(bindless)
	return emitAndDispatchWith(e, t, out, resources, options, bindless, callerFile, callerLine, stageName)
}

func emitAndDispatchWith(e *emit.Emitter, t *Trace, out ast.StageOutput, resources ShaderResources, options CompilerOption, bindless bool, callerFile string, callerLine int, stageName string) (StageArtifacts, error) {
	globalSrc := e.EmitGlobals(t.Globals())
	stageSrc := e.EmitStage(out)
	source := globalSrc + stageSrc

	targets := options.targets()
	if len(targets) == 0 {
		return StageArtifacts{Resources: resources, Targets: map[backend.Target]backend.Artifact{}}, nil
	}

	cacheKey := ""
	if options.Cache != nil {
		itemKey := cache.TransformSourceLocation(options.ProjectRoot, callerFile, callerLine, 0) + "_" + stageName
		for _, target := range targets {
			itemKey += "_" + string(target)
		}
		if bindless {
			itemKey += "_Bindless"
		}
		cacheKey = cache.Key(stageName, itemKey)
	}

	compile := func() (cache.Entry, error) {
		dispatcher := options.Dispatcher
		if dispatcher == nil {
			dispatcher = &backend.Dispatcher{}
		}
		artifacts, err := dispatcher.Dispatch(context.Background(), source, targets)
		if err != nil {
			return cache.Entry{}, fmt.Errorf("%w: %s: %w", ErrBackendCompile, stageName, err)
		}
		return cache.Entry{Source: source, Reflection: targetMap(artifacts)}, nil
	}

	var entry cache.Entry
	var err error
	if options.Cache != nil {
		entry, err = options.Cache.GetOrCompile(cacheKey, compile)
	} else {
		entry, err = compile()
	}
	if err != nil {
		return StageArtifacts{}, err
	}

	targetsOut, _ := entry.Reflection.(map[backend.Target]backend.Artifact)
	return StageArtifacts{Targets: targetsOut, Resources: resources}, nil
}

func targetMap(artifacts []backend.Artifact) map[backend.Target]backend.Artifact {
	m := make(map[backend.Target]backend.Artifact, len(artifacts))
	for _, a := range artifacts {
		m[a.Target] = a
	}
	return m
}

// validateNumThreads rejects a workgroup size the adapter cannot
// dispatch (spec.md §5). A nil adapter skips the check — the caller has
// no device bound yet, so the dimensions are trusted as-is.
func validateNumThreads(numthreads [3]int, adapter igpucore.GPUAdapter) error {
	if adapter == nil {
		return nil
	}
	limit := adapter.MaxWorkgroupSize()
	dims := [3]uint32{limit[0], limit[1], limit[2]}
	for i, n := range numthreads {
		if n <= 0 || uint32(n) > dims[i] {
			return fmt.Errorf("%w: numthreads[%d]=%d exceeds adapter limit %d", ErrConfiguration, i, n, dims[i])
		}
	}
	return nil
}

// callSite reports the file and line of the CompileRasterPipeline/
// CompileComputePipeline caller, two frames up from here, for use as the
// hardcode manager's cache key (spec.md §6).
func callSite() (string, int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", 0
	}
	return file, line
}
