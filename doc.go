// Package shadertrace is an embedded shader DSL: Go functions trace the
// body of a vertex, fragment, or compute stage by operating on proxy
// values (Float, Vec, Mat, aggregates, arrays, textures) instead of real
// numbers, and CompileRasterPipeline/CompileComputePipeline turn the
// resulting trace into Slang source, dispatched to SPIR-V/GLSL/HLSL/
// DXIL/DXBC back ends with a reflection record for each compiled stage.
package shadertrace
