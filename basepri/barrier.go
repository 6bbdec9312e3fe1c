package basepri

// Barrier orders memory accesses around a change of the priority threshold.
// The variant is fixed per build target and passed as a type argument, it is
// never chosen at run time.
type Barrier interface {
	Enter()
	Exit()
}

// V7M is the barrier sequence of ARMv7-M and later cores (Cortex-M3 and up).
// Writing BASEPRI through MSR is self synchronizing so only the compiler has
// to be kept from reordering accesses across it.
type V7M struct{}

func (V7M) Enter() {
	compilerFence()
}

func (V7M) Exit() {
	compilerFence()
}

// V6M is the barrier sequence of ARMv6-M cores (Cortex-M0, M0+). These cores
// mask priorities by disabling sources in the NVIC, which needs a data and
// an instruction synchronization barrier before the protected accesses.
type V6M struct{}

func (V6M) Enter() {
	dataSync()
	instructionSync()
}

func (V6M) Exit() {
	compilerFence()
}
