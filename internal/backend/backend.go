// Package backend is the per-compiler dispatch facade (spec.md §4.7):
// one call takes Slang-shaped source and fans out to the external
// compiler back-ends that turn it into SPIR-V, DXIL, DXBC, GLSL, and
// HLSL, each paired with a reflection record. Grounded on
// internal/native/shader_helper.go's naga.Compile/hal.ShaderModule
// usage — the only back-end with a real, runnable Go implementation in
// this dependency graph. The others are modeled as injectable function
// values so a caller can wire a real glslang/SPIRV-Cross/DXC/D3DCompile
// binding without this package depending on cgo or external processes.
package backend

import (
	"context"
	"fmt"

	"github.com/gogpu/wgpu/hal"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/shadertrace/internal/native"
)

// Target names one of the five output languages spec.md §6 enumerates.
type Target string

const (
	TargetSpirV Target = "spirv"
	TargetGLSL  Target = "glsl"
	TargetHLSL  Target = "hlsl"
	TargetDXIL  Target = "dxil"
	TargetDXBC  Target = "dxbc"
)

// Artifact is one target's compiled output: either textual source (GLSL,
// HLSL) or a byte blob (SPIR-V words as bytes, DXIL, DXBC).
type Artifact struct {
	Target Target
	Source string
	Blob   []byte
}

// CrossCompileFunc adapts an external compiler leaf (glslang, SPIRV-Cross,
// DXC, D3DCompile) into this package's dispatch shape. spirv is the
// SPIR-V word stream produced by the SPIR-V stage; entryPoint is always
// "main" (spec.md §6).
type CrossCompileFunc func(ctx context.Context, spirv []uint32, entryPoint string) (Artifact, error)

// Dispatcher fans a single Slang-shaped source out to every requested
// target. SPIRV is compiled directly via naga; the remaining targets are
// optional external collaborators injected by the caller — a nil func
// for a requested target is a back-end failure (spec.md §7), not a
// silent skip, since the caller already opted in via CompilerOption.
type Dispatcher struct {
	Device hal.Device // optional: validates the SPIR-V by creating a real shader module

	GLSL CrossCompileFunc
	HLSL CrossCompileFunc
	DXIL CrossCompileFunc
	DXBC CrossCompileFunc
}

// Dispatch compiles source to every target named in targets, concurrently,
// and returns one Artifact per target in input order. The first hard
// failure aborts the whole dispatch (spec.md §4.7, "hard compile failure
// aborts the pipeline compile").
func (d *Dispatcher) Dispatch(ctx context.Context, source string, targets []Target) ([]Artifact, error) {
	spirvWords, spirvBytes, err := d.compileSpirV(ctx, source)
	if err != nil {
		return nil, err
	}

	results := make([]Artifact, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			switch target {
			case TargetSpirV:
				results[i] = Artifact{Target: TargetSpirV, Blob: spirvBytes}
				return nil
			case TargetGLSL:
				return d.crossCompile(gctx, d.GLSL, target, spirvWords, &results[i])
			case TargetHLSL:
				return d.crossCompile(gctx, d.HLSL, target, spirvWords, &results[i])
			case TargetDXIL:
				return d.crossCompile(gctx, d.DXIL, target, spirvWords, &results[i])
			case TargetDXBC:
				return d.crossCompile(gctx, d.DXBC, target, spirvWords, &results[i])
			default:
				return fmt.Errorf("backend: unknown target %q", target)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Dispatcher) crossCompile(ctx context.Context, fn CrossCompileFunc, target Target, spirv []uint32, out *Artifact) error {
	if fn == nil {
		return fmt.Errorf("backend: %s: %w: no compiler configured", target, ErrBackendCompile)
	}
	artifact, err := fn(ctx, spirv, "main")
	if err != nil {
		return fmt.Errorf("backend: %s: %w: %v", target, ErrBackendCompile, err)
	}
	*out = artifact
	return nil
}

// compileSpirV runs the real back-end leaf: naga's WGSL-to-SPIR-V path
// stands in for the Slang-to-SPIR-V step (spec.md §4.7), since no native
// Slang compiler binary is available in this environment. The word-stream
// conversion and, when a device is configured, module validation both
// reuse internal/native/shader_helper.go's CompileShaderToSPIRV/
// CreateShaderModule rather than repeating that logic here.
func (d *Dispatcher) compileSpirV(ctx context.Context, source string) ([]uint32, []byte, error) {
	spirvWords, err := native.CompileShaderToSPIRV(source)
	if err != nil {
		return nil, nil, fmt.Errorf("backend: spirv: %w: %v", ErrBackendCompile, err)
	}

	spirvBytes := make([]byte, len(spirvWords)*4)
	for i, w := range spirvWords {
		spirvBytes[i*4] = byte(w)
		spirvBytes[i*4+1] = byte(w >> 8)
		spirvBytes[i*4+2] = byte(w >> 16)
		spirvBytes[i*4+3] = byte(w >> 24)
	}

	if d.Device != nil {
		module, err := native.CreateShaderModule(d.Device, "shadertrace", spirvWords)
		if err != nil {
			return nil, nil, fmt.Errorf("backend: spirv: module validation: %w: %v", ErrBackendCompile, err)
		}
		d.Device.DestroyShaderModule(module)
	}

	return spirvWords, spirvBytes, nil
}
