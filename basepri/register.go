// Package basepri drives the priority threshold register of Cortex-M cores.
//
// While the register holds a nonzero value every interrupt with a hardware
// priority value greater than or equal to it is deferred. Lower hardware
// values are more urgent, zero disables masking altogether.
package basepri

// Register is the priority threshold of the executing core.
type Register interface {
	// Get returns the installed threshold.
	Get() uint32

	// Set installs the threshold unconditionally. When used to raise the
	// protection it must be followed by Barrier.Enter.
	Set(value uint32)

	// SetMax installs the threshold only if masking is disabled or the value
	// is stricter than the installed one. A zero value is ignored.
	SetMax(value uint32)
}

// stricter reports whether value masks more interrupts than current.
func stricter(value, current uint32) bool {
	return value != 0 && (current == 0 || value < current)
}
