package basepri

import (
	"sync"
	"testing"
)

var (
	_ Register = (*Sim)(nil)
	_ Register = (*SourceMask)(nil)
	_ Barrier  = V6M{}
	_ Barrier  = V7M{}
)

func TestEncoding(t *testing.T) {
	tests := []struct {
		bits     uint8
		logical  uint8
		hardware uint32
	}{
		{4, 1, 0xF0},
		{4, 2, 0xE0},
		{4, 15, 0x10},
		{3, 1, 0xE0},
		{3, 7, 0x20},
		{2, 1, 0xC0},
		{2, 3, 0x40},
		{8, 255, 0x01},
	}

	for _, tc := range tests {
		enc := Encoding{Bits: tc.bits}
		if got := enc.Hardware(tc.logical); got != tc.hardware {
			t.Errorf("bits %d: expected Hardware(%d) = %#x, got %#x", tc.bits, tc.logical, tc.hardware, got)
		}
		if got := enc.Logical(tc.hardware); got != tc.logical {
			t.Errorf("bits %d: expected Logical(%#x) = %d, got %d", tc.bits, tc.hardware, tc.logical, got)
		}
		if !enc.Valid(tc.logical) {
			t.Errorf("bits %d: priority %d reported invalid", tc.bits, tc.logical)
		}
	}
}

func TestEncodingBounds(t *testing.T) {
	enc := Encoding{Bits: 3}
	if enc.Max() != 7 {
		t.Errorf("expected max 7, got %d", enc.Max())
	}
	if enc.Valid(0) || enc.Valid(8) {
		t.Error("out of range priorities reported valid")
	}
	if enc.Hardware(0) != 0 {
		t.Errorf("expected priority 0 to leave masking disabled, got %#x", enc.Hardware(0))
	}
	if enc.Hardware(42) != enc.Hardware(7) {
		t.Errorf("expected priorities above max to clamp")
	}
	if enc.Implemented() != 0xE0 {
		t.Errorf("expected implemented bits 0xe0, got %#x", enc.Implemented())
	}
}

func TestEncodingOrder(t *testing.T) {
	enc := Encoding{Bits: 4}
	for p := uint8(1); p < enc.Max(); p++ {
		mask := enc.Hardware(p)
		if !Blocks(mask, enc.Hardware(p)) {
			t.Errorf("priority %d not deferred by its own ceiling", p)
		}
		if Blocks(mask, enc.Hardware(p+1)) {
			t.Errorf("priority %d deferred by ceiling %d", p+1, p)
		}
	}
	if Blocks(0, 0xF0) {
		t.Error("a zero mask must not defer anything")
	}
}

func TestSimSetMax(t *testing.T) {
	enc := Encoding{Bits: 4}
	reg := NewSim(enc)

	steps := []struct {
		op       string
		value    uint32
		expected uint32
	}{
		{"max", 0, 0},
		{"max", 0xE0, 0xE0},
		{"max", 0xF0, 0xE0},
		{"max", 0x20, 0x20},
		{"max", 0x20, 0x20},
		{"max", 0x30, 0x20},
		{"max", 0, 0x20},
		{"set", 0xF0, 0xF0},
		{"set", 0, 0},
		{"set", 0x2F, 0x20},
		{"max", 0x1F, 0x10},
	}

	for i, step := range steps {
		if step.op == "set" {
			reg.Set(step.value)
		} else {
			reg.SetMax(step.value)
		}
		if got := reg.Get(); got != step.expected {
			t.Errorf("step %d (%s %#x): expected %#x, got %#x", i, step.op, step.value, step.expected, got)
		}
	}
}

func TestSimSetMaxNeverWeakens(t *testing.T) {
	enc := Encoding{Bits: 4}
	for current := uint8(1); current <= enc.Max(); current++ {
		for value := uint8(0); value <= enc.Max(); value++ {
			reg := NewSim(enc)
			reg.Set(enc.Hardware(current))
			reg.SetMax(enc.Hardware(value))

			got := enc.Logical(reg.Get())
			if got < current {
				t.Fatalf("ceiling %d weakened to %d by %d", current, got, value)
			}
			if value > current && got != value {
				t.Fatalf("ceiling %d not raised to %d, got %d", current, value, got)
			}
		}
	}
}

func TestSimConcurrentSetMax(t *testing.T) {
	enc := Encoding{Bits: 8}
	reg := NewSim(enc)

	var wg sync.WaitGroup
	for p := 1; p <= 200; p++ {
		wg.Add(1)
		go func(p uint8) {
			defer wg.Done()
			reg.SetMax(enc.Hardware(p))
		}(uint8(p))
	}
	wg.Wait()

	if got := enc.Logical(reg.Get()); got != 200 {
		t.Errorf("expected the strictest ceiling 200, got %d", got)
	}
}

type fakeIRQ struct {
	enabled bool
	writes  int
}

func (f *fakeIRQ) EnableIRQ() {
	f.enabled = true
	f.writes++
}

func (f *fakeIRQ) DisableIRQ() {
	f.enabled = false
	f.writes++
}

func TestSourceMask(t *testing.T) {
	enc := Encoding{Bits: 2}
	low, mid, high := &fakeIRQ{enabled: true}, &fakeIRQ{enabled: true}, &fakeIRQ{enabled: true}
	mask := NewSourceMask(
		Source{IRQ: low, Priority: enc.Hardware(1)},
		Source{IRQ: mid, Priority: enc.Hardware(2)},
		Source{IRQ: high, Priority: enc.Hardware(3)},
	)

	mask.SetMax(enc.Hardware(2))
	if low.enabled || mid.enabled || !high.enabled {
		t.Errorf("ceiling 2: expected only the high source enabled, got %v %v %v", low.enabled, mid.enabled, high.enabled)
	}
	if mask.Get() != enc.Hardware(2) {
		t.Errorf("expected threshold %#x, got %#x", enc.Hardware(2), mask.Get())
	}

	writes := low.writes
	mask.SetMax(enc.Hardware(1))
	if low.writes != writes || mask.Get() != enc.Hardware(2) {
		t.Error("a weaker threshold must leave the mask untouched")
	}

	mask.Set(0)
	if !low.enabled || !mid.enabled || !high.enabled {
		t.Error("clearing the threshold must enable every source")
	}
}
