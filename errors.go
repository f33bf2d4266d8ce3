package shadertrace

import "errors"

// Sentinel errors for the failure kinds this package reports (spec.md §7).
// Each is wrapped with fmt.Errorf("...: %w", err) at the call site so
// errors.Is keeps working while the message carries the specific detail.
var (
	// ErrConfiguration is returned for a disallowed CompilerOption
	// combination, e.g. compiling DXBC with bindless enabled.
	ErrConfiguration = errors.New("shadertrace: disallowed compiler option combination")

	// ErrInterfaceMismatch is returned when a rasterised pipeline's vertex
	// output type and fragment input type disagree.
	ErrInterfaceMismatch = errors.New("shadertrace: vertex/fragment interface mismatch")

	// ErrNonVoidComputeReturn is returned when a compute builder returns a
	// value; compute builders must return void.
	ErrNonVoidComputeReturn = errors.New("shadertrace: compute builder must return void")

	// ErrAggregateField names the failure of structural reflection to
	// find an aggregate field. No function in this package returns it:
	// fields of unsupported types are skipped without an error.
	ErrAggregateField = errors.New("shadertrace: aggregate field not found by reflection")

	// ErrBackendCompile wraps a downstream compiler's diagnostic text.
	ErrBackendCompile = errors.New("shadertrace: back-end compile failed")

	// ErrCacheMiss is returned when retrieving a shader code for a
	// (stage, key) pair that was never registered.
	ErrCacheMiss = errors.New("shadertrace: cache miss")

	// ErrNoGPU names the absence of a GPU back-end. No function in this
	// package returns it: CompileComputePipeline given a nil adapter
	// skips workgroup-size validation instead.
	ErrNoGPU = errors.New("shadertrace: no GPU backend available")
)
