// Package gpucore carries the reflection vocabulary shared between a
// compiled shader's resource bindings ([BindingType]) and the GPU
// adapters that consume them (see internal/gpucore.GPUAdapter).
package gpucore
