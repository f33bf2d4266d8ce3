package backend

import "errors"

// ErrBackendCompile is wrapped by every dispatch failure in this package.
// The root package wraps it again alongside its own sentinel of the same
// name so callers can match either.
var ErrBackendCompile = errors.New("backend: compile failed")
