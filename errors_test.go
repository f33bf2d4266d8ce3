package shadertrace

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrConfiguration,
		ErrInterfaceMismatch,
		ErrNonVoidComputeReturn,
		ErrAggregateField,
		ErrBackendCompile,
		ErrCacheMiss,
		ErrNoGPU,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d (%v) should not match sentinel %d (%v)", i, a, j, b)
			}
		}
	}
}

func TestWrappedSentinelsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("%s: %w", "vertex", ErrInterfaceMismatch)
	if !errors.Is(wrapped, ErrInterfaceMismatch) {
		t.Error("wrapping with %w should preserve errors.Is matching")
	}
}
