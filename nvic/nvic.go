// Package nvic gives access to the interrupt lines of the Cortex-M nested
// vectored interrupt controller.
package nvic

import (
	"sync/atomic"
	"unsafe"
)

// Lines is the number of external interrupt lines an NVIC can implement.
const Lines = 496

var (
	NVIC = (*Registers)(unsafe.Pointer(uintptr(0xE000E100)))
)

type (
	Registers struct {
		ISER [16]uint32
		_    [64]byte
		ICER [16]uint32
		_    [64]byte
		ISPR [16]uint32
		_    [64]byte
		ICPR [16]uint32
		_    [64]byte
		IABR [16]uint32
		_    [192]byte
		IPR  [496]uint8
	}
)

// Interrupt is one external interrupt line. It satisfies basepri.Interrupt.
type Interrupt struct {
	regs *Registers
	n    int16
}

// Line returns interrupt line n of the controller.
func (r *Registers) Line(n int16) Interrupt {
	return Interrupt{regs: r, n: n}
}

func (i Interrupt) Number() int16 {
	return i.n
}

func (i Interrupt) EnableIRQ() {
	atomic.StoreUint32(&i.regs.ISER[i.n>>5], 1<<(i.n&0x1F))
}

func (i Interrupt) DisableIRQ() {
	atomic.StoreUint32(&i.regs.ICER[i.n>>5], 1<<(i.n&0x1F))
}

// SetPriority writes the hardware priority of the line. ARMv6-M only allows
// word accesses to the priority registers so the byte is merged into its word.
func (i Interrupt) SetPriority(priority uint8) {
	word := (*uint32)(unsafe.Pointer(&i.regs.IPR[i.n&^3]))
	shift := uint32(i.n&3) * 8
	for {
		old := atomic.LoadUint32(word)
		value := old&^(0xFF<<shift) | uint32(priority)<<shift
		if atomic.CompareAndSwapUint32(word, old, value) {
			return
		}
	}
}

func (i Interrupt) Priority() uint8 {
	word := (*uint32)(unsafe.Pointer(&i.regs.IPR[i.n&^3]))
	return uint8(atomic.LoadUint32(word) >> (uint32(i.n&3) * 8))
}
