package targets

import (
	"errors"
	"testing"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		series  string
		core    string
		barrier string
		bits    uint8
	}{
		{"atsamd21g18a", "samd21", ARMv6M, "V6M", 2},
		{"ATSAME51J19A", "same51", ARMv7M, "V7M", 3},
		{"stm32f4", "stm32f4", ARMv7M, "V7M", 4},
		{"rp2040", "rp2040", ARMv6M, "V6M", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target, err := All().Find(tc.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.Series != tc.series {
				t.Errorf("expected series %s, got %s", tc.series, target.Series)
			}
			if target.Core != tc.core || target.Barrier() != tc.barrier {
				t.Errorf("expected %s/%s, got %s/%s", tc.core, tc.barrier, target.Core, target.Barrier())
			}
			if target.Encoding().Bits != tc.bits {
				t.Errorf("expected %d priority bits, got %d", tc.bits, target.Encoding().Bits)
			}
			if target.HasBasepri() != (tc.core == ARMv7M) {
				t.Errorf("unexpected BASEPRI support for %s", tc.core)
			}
		})
	}
}

func TestFindUnknown(t *testing.T) {
	if _, err := All().Find("z80"); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("expected %v, got %v", ErrTargetNotFound, err)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "targets: [\n"},
		{"core", "targets:\n  - series: x\n    core: riscv\n    priorityBits: 3\n"},
		{"bits", "targets:\n  - series: x\n    core: armv7m\n    priorityBits: 9\n"},
		{"series", "targets:\n  - core: armv7m\n    priorityBits: 3\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.src)); !errors.Is(err, ErrInvalidTargetFile) {
				t.Errorf("expected %v, got %v", ErrInvalidTargetFile, err)
			}
		})
	}
}
