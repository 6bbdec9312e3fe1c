package basepri

import "sync/atomic"

// Sim is an in-memory BASEPRI register with the semantics of MSR BASEPRI
// and MSR BASEPRI_MAX, including the truncation of unimplemented bits. It is
// safe for concurrent use.
type Sim struct {
	value       atomic.Uint32
	implemented uint32
}

func NewSim(enc Encoding) *Sim {
	return &Sim{implemented: enc.Implemented()}
}

func (s *Sim) Get() uint32 {
	return s.value.Load()
}

func (s *Sim) Set(value uint32) {
	s.value.Store(value & s.implemented)
}

func (s *Sim) SetMax(value uint32) {
	value &= s.implemented
	for {
		current := s.value.Load()
		if !stricter(value, current) {
			return
		}
		if s.value.CompareAndSwap(current, value) {
			return
		}
	}
}
