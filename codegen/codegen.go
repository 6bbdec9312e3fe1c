// Package codegen emits the Go source that binds a validated system to the
// critical section primitive: ceiling constants, the resource table, the
// vector priorities and lines, and the section of the target's core.
package codegen

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"omibyte.io/ceiling/claims"
	"omibyte.io/ceiling/nvic"
	"omibyte.io/ceiling/targets"
)

const (
	basepriPath  = "omibyte.io/ceiling/basepri"
	criticalPath = "omibyte.io/ceiling/critical"
	nvicPath     = "omibyte.io/ceiling/nvic"
)

// reserved holds the names declared by the generated file itself.
var reserved = map[string]bool{
	"Encoding":      true,
	"SetPriorities": true,
	"Ceiling":       true,
	"Resource":      true,
	"Resources":     true,
	"Vector":        true,
	"Vectors":       true,
	"Section":       true,
	"NewSection":    true,
}

var (
	ErrInvalidIdentifier   = errors.New("resource id is not a valid identifier")
	ErrDuplicateIdentifier = errors.New("resource ids map to the same identifier")
	ErrUnknownVector       = errors.New("interrupt vector has no NVIC line")
)

type Config struct {
	Package string
	Source  string
	Tags    []string
	Target  targets.TargetInfo
	Jobs    []claims.Job
	Table   claims.Table

	// Lines maps interrupt vector names to their NVIC line. Every job vector
	// must be present on targets without BASEPRI.
	Lines map[string]int16
}

// Identifier returns the exported Go name of a resource ID.
func Identifier(id claims.ResourceID) (string, error) {
	words := strings.FieldsFunc(string(id), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}

	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, word := range words {
		b.WriteString(caser.String(word))
	}

	name := b.String()
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "R" + name
	}
	return name, nil
}

func identifiers(table claims.Table) (map[claims.ResourceID]string, error) {
	var errs []error
	names := map[claims.ResourceID]string{}
	owners := map[string]claims.ResourceID{}
	for _, id := range table.IDs() {
		name, err := Identifier(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if reserved[name] {
			errs = append(errs, fmt.Errorf("%w: %q collides with the generated %s", ErrInvalidIdentifier, id, name))
			continue
		}
		if other, ok := owners[name]; ok {
			errs = append(errs, fmt.Errorf("%w: %q and %q as %s", ErrDuplicateIdentifier, other, id, name))
			continue
		}
		owners[name] = id
		names[id] = name
	}
	return names, errors.Join(errs...)
}

func writePreamble(w io.Writer, cfg Config) {
	fmt.Fprintf(w, "// Code generated by srpc from %s. DO NOT EDIT.\n\n", cfg.Source)
	if len(cfg.Tags) > 0 {
		fmt.Fprintf(w, "//go:build %s\n\n", strings.Join(cfg.Tags, " && "))
	}
	fmt.Fprintln(w, "package", cfg.Package)
}

// Generate returns the formatted source of the system binding.
func Generate(cfg Config) ([]byte, error) {
	names, err := identifiers(cfg.Table)
	if err != nil {
		return nil, err
	}
	if err = checkLines(cfg); err != nil {
		return nil, err
	}

	var w strings.Builder
	writePreamble(&w, cfg)

	fmt.Fprintln(&w, "import (")
	fmt.Fprintf(&w, "%q\n", basepriPath)
	fmt.Fprintf(&w, "%q\n", criticalPath)
	fmt.Fprintf(&w, "%q\n", nvicPath)
	fmt.Fprintln(&w, ")")

	enc := cfg.Target.Encoding()
	fmt.Fprintf(&w, "\n// Encoding is the NVIC priority layout of the %s.\n", cfg.Target.Series)
	fmt.Fprintf(&w, "var Encoding = basepri.Encoding{Bits: %d}\n", enc.Bits)

	writeCeilings(&w, cfg, names)
	writeResources(&w, cfg, names)
	writeVectors(&w, cfg)
	writeSection(&w, cfg)

	src := w.String()
	buf, err := imports.Process(cfg.Package+"_srp.go", []byte(src), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error formatting generated source: %v", err)
	}
	return buf, nil
}

// checkLines reports job vectors without a valid NVIC line. Lines are only
// required when the section masks sources in the NVIC.
func checkLines(cfg Config) error {
	var errs []error
	for _, job := range cfg.Jobs {
		line, ok := cfg.Lines[job.ISR]
		if ok && (line < 0 || line >= nvic.Lines) {
			errs = append(errs, fmt.Errorf("%w: %s of job %s maps to line %d", ErrUnknownVector, job.ISR, job, line))
		} else if !ok && !cfg.Target.HasBasepri() {
			errs = append(errs, fmt.Errorf("%w: %s of job %s", ErrUnknownVector, job.ISR, job))
		}
	}
	return errors.Join(errs...)
}

func writeCeilings(w io.Writer, cfg Config, names map[claims.ResourceID]string) {
	fmt.Fprintln(w, "\n// Ceiling is the logical ceiling priority of a resource.")
	fmt.Fprintln(w, "type Ceiling uint8")
	fmt.Fprintln(w, "\nfunc (c Ceiling) Ceiling() uint8 {\nreturn uint8(c)\n}")

	if cfg.Table.Len() == 0 {
		return
	}

	fmt.Fprintln(w, "\nconst (")
	for _, id := range cfg.Table.IDs() {
		fmt.Fprintf(w, "%s Ceiling = %d\n", names[id], cfg.Table.Ceiling(id))
	}
	fmt.Fprintln(w, ")")
}

func writeResources(w io.Writer, cfg Config, names map[claims.ResourceID]string) {
	fmt.Fprintln(w, "\n// Resource is an entry of the resource table.")
	fmt.Fprintln(w, "type Resource struct {\nID string\nCeiling Ceiling\nJobs []uint32\n}")

	fmt.Fprintln(w, "\n// Resources lists the jobs claiming each resource.")
	fmt.Fprintln(w, "var Resources = [...]Resource{")
	for _, id := range cfg.Table.IDs() {
		var jobs []string
		for _, job := range cfg.Table.Claimants(id) {
			jobs = append(jobs, fmt.Sprint(job.UID))
		}
		fmt.Fprintf(w, "{ID: %q, Ceiling: %s, Jobs: []uint32{%s}},\n", id, names[id], strings.Join(jobs, ", "))
	}
	fmt.Fprintln(w, "}")
}

func writeVectors(w io.Writer, cfg Config) {
	enc := cfg.Target.Encoding()

	fmt.Fprintln(w, "\n// Vector binds a job to its interrupt and hardware priority.")
	fmt.Fprintln(w, "// IRQ is -1 when the line is not known.")
	fmt.Fprintln(w, "type Vector struct {\nJob uint32\nISR string\nIRQ int16\nPriority uint8\n}")

	fmt.Fprintln(w, "\n// Vectors holds the NVIC priority of every job.")
	fmt.Fprintln(w, "var Vectors = [...]Vector{")
	for _, job := range cfg.Jobs {
		line, ok := cfg.Lines[job.ISR]
		if !ok {
			line = -1
		}
		comment := fmt.Sprintf("priority %d", job.Priority)
		if len(job.Name) > 0 {
			comment = fmt.Sprintf("%q, %s", job.Name, comment)
		}
		fmt.Fprintf(w, "{Job: %d, ISR: %q, IRQ: %d, Priority: %#02x}, // %s\n",
			job.UID, job.ISR, line, enc.Hardware(job.Priority), comment)
	}
	fmt.Fprintln(w, "}")

	fmt.Fprintln(w, "\n// SetPriorities writes the priority of every known job vector to the NVIC.")
	fmt.Fprintln(w, "func SetPriorities(regs *nvic.Registers) {")
	fmt.Fprintln(w, "for _, v := range Vectors {")
	fmt.Fprintln(w, "if v.IRQ >= 0 {")
	fmt.Fprintln(w, "regs.Line(v.IRQ).SetPriority(v.Priority)")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "}")
}

func writeSection(w io.Writer, cfg Config) {
	if cfg.Target.HasBasepri() {
		fmt.Fprintln(w, "\n// Section guards the resources through BASEPRI.")
		fmt.Fprintf(w, "var Section = critical.New(basepri.Hardware{}, basepri.%s{}, Encoding)\n", cfg.Target.Barrier())
		return
	}

	fmt.Fprintln(w, "\n// NewSection programs the job priorities and guards the resources by")
	fmt.Fprintln(w, "// masking the job vectors in the NVIC. Pass nvic.NVIC on the target.")
	fmt.Fprintf(w, "func NewSection(regs *nvic.Registers) *critical.Section[*basepri.SourceMask, basepri.%s] {\n", cfg.Target.Barrier())
	fmt.Fprintln(w, "SetPriorities(regs)")
	fmt.Fprintln(w, "sources := make([]basepri.Source, 0, len(Vectors))")
	fmt.Fprintln(w, "for _, v := range Vectors {")
	fmt.Fprintln(w, "sources = append(sources, basepri.Source{IRQ: regs.Line(v.IRQ), Priority: uint32(v.Priority)})")
	fmt.Fprintln(w, "}")
	fmt.Fprintf(w, "return critical.New(basepri.NewSourceMask(sources...), basepri.%s{}, Encoding)\n", cfg.Target.Barrier())
	fmt.Fprintln(w, "}")
}
