package targets

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Integer is an SVD scaled non-negative integer.
type Integer uint64

func (h *Integer) UnmarshalXML(d *xml.Decoder, start xml.StartElement) (err error) {
	var v string
	if err = d.DecodeElement(&v, &start); err != nil {
		return err
	}

	v = strings.TrimSpace(v)
	var value uint64
	if s, ok := strings.CutPrefix(strings.ToLower(v), "0x"); ok {
		value, err = strconv.ParseUint(s, 16, 64)
	} else {
		value, err = strconv.ParseUint(v, 10, 64)
	}

	if err != nil {
		return err
	}
	*h = Integer(value)
	return nil
}

type deviceElement struct {
	Name        string             `xml:"name"`
	Series      string             `xml:"series"`
	CPU         cpuElement         `xml:"cpu"`
	Peripherals peripheralsElement `xml:"peripherals"`
}

type cpuElement struct {
	Name             string  `xml:"name"`
	NVICPriorityBits Integer `xml:"nvicPrioBits"`
}

type peripheralsElement struct {
	Elements []peripheralElement `xml:"peripheral"`
}

type peripheralElement struct {
	Name       string             `xml:"name"`
	Interrupts []interruptElement `xml:"interrupt"`
}

type interruptElement struct {
	Name  string  `xml:"name"`
	Value Integer `xml:"value"`
}

// SVD cpu names mapped to the core generation and the cpu name used in
// target descriptions.
var svdCores = map[string][2]string{
	"CM0":     {ARMv6M, "cortex-m0"},
	"CM0PLUS": {ARMv6M, "cortex-m0plus"},
	"CM0+":    {ARMv6M, "cortex-m0plus"},
	"CM1":     {ARMv6M, "cortex-m1"},
	"CM23":    {ARMv6M, "cortex-m23"},
	"CM3":     {ARMv7M, "cortex-m3"},
	"CM4":     {ARMv7M, "cortex-m4"},
	"CM7":     {ARMv7M, "cortex-m7"},
	"CM33":    {ARMv7M, "cortex-m33"},
}

// ImportSVD derives a target description from a CMSIS-SVD device file. The
// returned vector table maps interrupt names to their line numbers.
func ImportSVD(r io.Reader) (TargetInfo, map[string]uint32, error) {
	var device deviceElement
	if err := xml.NewDecoder(r).Decode(&device); err != nil {
		return TargetInfo{}, nil, fmt.Errorf("%w: %v", ErrInvalidTargetFile, err)
	}

	core, ok := svdCores[strings.ToUpper(device.CPU.Name)]
	if !ok {
		return TargetInfo{}, nil, fmt.Errorf("%w: %s: unsupported cpu %q", ErrInvalidTargetFile, device.Name, device.CPU.Name)
	}

	if bits := device.CPU.NVICPriorityBits; bits > 8 {
		return TargetInfo{}, nil, fmt.Errorf("%w: %s: priority bits must be within 1..8, got %d", ErrInvalidTargetFile, device.Name, bits)
	}

	series := device.Series
	if len(series) == 0 {
		series = device.Name
	}

	target := TargetInfo{
		Series:       strings.ToLower(series),
		Chips:        []string{strings.ToLower(device.Name)},
		Cpu:          core[1],
		Core:         core[0],
		PriorityBits: uint8(device.CPU.NVICPriorityBits),
		Tags:         []string{strings.ToLower(series)},
	}
	if err := target.validate(); err != nil {
		return TargetInfo{}, nil, err
	}

	vectors := map[string]uint32{}
	for _, p := range device.Peripherals.Elements {
		for _, irq := range p.Interrupts {
			vectors[irq.Name] = uint32(irq.Value)
		}
	}
	return target, vectors, nil
}
