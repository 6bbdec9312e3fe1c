package basepri

// Interrupt is an interrupt line of the NVIC.
type Interrupt interface {
	EnableIRQ()
	DisableIRQ()
}

// Source is an interrupt line owned by a job together with its hardware
// priority value.
type Source struct {
	IRQ      Interrupt
	Priority uint32
}

// SourceMask emulates a priority threshold on ARMv6-M cores, which lack
// BASEPRI, by disabling every source at or below the threshold in the NVIC.
// Changes are not atomic so entering a section must use the V6M barrier.
type SourceMask struct {
	sources   []Source
	threshold uint32
}

func NewSourceMask(sources ...Source) *SourceMask {
	return &SourceMask{sources: sources}
}

func (m *SourceMask) Get() uint32 {
	return m.threshold
}

func (m *SourceMask) Set(value uint32) {
	m.threshold = value
	for _, src := range m.sources {
		if Blocks(value, src.Priority) {
			src.IRQ.DisableIRQ()
		} else {
			src.IRQ.EnableIRQ()
		}
	}
}

func (m *SourceMask) SetMax(value uint32) {
	if stricter(value, m.threshold) {
		m.Set(value)
	}
}
