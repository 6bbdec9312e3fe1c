//go:build !cortexm

package basepri

import "sync/atomic"

// fence is touched by the host stand-ins for the barrier instructions. Atomic
// operations are sequentially consistent which keeps both the compiler and
// the processor from moving accesses across them.
var fence atomic.Uint32

var (
	compilerFence = func() {
		fence.Load()
	}

	dataSync = func() {
		fence.Add(1)
	}

	instructionSync = func() {
		fence.Load()
	}
)
