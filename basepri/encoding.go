package basepri

// Encoding converts logical priorities into the values held by the NVIC
// priority registers and BASEPRI. Only the upper Bits of each 8-bit field are
// implemented. Logical priorities run from 1 (least urgent) to 2^Bits-1.
type Encoding struct {
	Bits uint8
}

// Implemented returns the mask of the implemented priority bits.
func (e Encoding) Implemented() uint32 {
	return 0xFF &^ (uint32(1)<<(8-e.Bits) - 1)
}

// Max returns the most urgent logical priority.
func (e Encoding) Max() uint8 {
	return uint8(uint32(1)<<e.Bits - 1)
}

// Valid reports whether the logical priority can be represented.
func (e Encoding) Valid(priority uint8) bool {
	return e.Bits >= 1 && e.Bits <= 8 && priority >= 1 && priority <= e.Max()
}

// Hardware returns the register value of a logical priority. Zero maps to
// zero, which leaves masking disabled. Priorities above Max are clamped.
func (e Encoding) Hardware(priority uint8) uint32 {
	if priority == 0 {
		return 0
	}
	if priority > e.Max() {
		priority = e.Max()
	}
	return (uint32(1)<<e.Bits - uint32(priority)) << (8 - e.Bits)
}

// Logical returns the logical priority of a register value.
func (e Encoding) Logical(value uint32) uint8 {
	value &= e.Implemented()
	if value == 0 {
		return 0
	}
	return uint8(uint32(1)<<e.Bits - value>>(8-e.Bits))
}

// Blocks reports whether an interrupt at hardware priority value is deferred
// while mask is installed.
func Blocks(mask, priority uint32) bool {
	return mask != 0 && priority >= mask
}
