package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/ceiling/basepri"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

var (
	ErrTargetNotFound    = errors.New("target not found")
	ErrInvalidTargetFile = errors.New("invalid target description")
)

// Core generations that differ in how priorities are masked.
const (
	ARMv6M = "armv6m"
	ARMv7M = "armv7m"
)

func All() Targets {
	return targets
}

type Targets []TargetInfo
type TargetInfo struct {
	Series       string   `yaml:"series"`
	Chips        []string `yaml:"chips"`
	Cpu          string   `yaml:"cpu"`
	Core         string   `yaml:"core"`
	PriorityBits uint8    `yaml:"priorityBits"`
	Tags         []string `yaml:"tags"`
}

// Encoding returns the priority encoding of the target's NVIC.
func (t TargetInfo) Encoding() basepri.Encoding {
	return basepri.Encoding{Bits: t.PriorityBits}
}

// Barrier returns the name of the basepri barrier type for the core.
func (t TargetInfo) Barrier() string {
	if t.Core == ARMv6M {
		return "V6M"
	}
	return "V7M"
}

// HasBasepri reports whether the core implements the BASEPRI register.
func (t TargetInfo) HasBasepri() bool {
	return t.Core == ARMv7M
}

func (t TargetInfo) validate() error {
	if len(t.Series) == 0 {
		return fmt.Errorf("%w: missing series", ErrInvalidTargetFile)
	}
	if t.Core != ARMv6M && t.Core != ARMv7M {
		return fmt.Errorf("%w: %s: unknown core %q", ErrInvalidTargetFile, t.Series, t.Core)
	}
	if t.PriorityBits < 1 || t.PriorityBits > 8 {
		return fmt.Errorf("%w: %s: priority bits must be within 1..8, got %d", ErrInvalidTargetFile, t.Series, t.PriorityBits)
	}
	return nil
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: series %s", ErrTargetNotFound, name)
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: chip %s", ErrTargetNotFound, name)
}

// Find looks the name up as a chip first and as a series second.
func (t Targets) Find(name string) (TargetInfo, error) {
	if target, err := t.FindByChip(name); err == nil {
		return target, nil
	}
	return t.FindBySeries(name)
}

// Parse decodes a target description file.
func Parse(data []byte) (Targets, error) {
	var t struct {
		Elements []TargetInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.Join(ErrInvalidTargetFile, err)
	}

	var errs []error
	for _, target := range t.Elements {
		if err := target.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t.Elements, nil
}

// Load reads a target description file from disk.
func Load(fname string) (Targets, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func init() {
	var err error
	if targets, err = Parse(rawTargets); err != nil {
		panic(err)
	}
}
