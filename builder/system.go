package builder

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"omibyte.io/ceiling/claims"
	"omibyte.io/ceiling/nvic"
	"omibyte.io/ceiling/targets"
)

// System is the declaration of the jobs of one application and the
// resources they share.
//
// SVD optionally names a device file, relative to the declaration, that
// supplies the NVIC line of each interrupt vector.
type System struct {
	Package   string      `yaml:"package"`
	Chip      string      `yaml:"chip"`
	Series    string      `yaml:"series"`
	SVD       string      `yaml:"svd"`
	Resources []string    `yaml:"resources"`
	Jobs      []JobConfig `yaml:"jobs"`
}

type JobConfig struct {
	UID       uint32   `yaml:"uid"`
	Name      string   `yaml:"name"`
	Priority  uint8    `yaml:"priority"`
	ISR       string   `yaml:"isr"`
	IRQ       *int16   `yaml:"irq"`
	Resources []string `yaml:"resources"`
}

// ParseSystem decodes a system declaration. Unknown fields are rejected.
func ParseSystem(data []byte) (*System, error) {
	var sys System
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sys); err != nil {
		return nil, errors.Join(ErrInvalidSystem, err)
	}
	return &sys, nil
}

// LoadSystem reads a system declaration from disk.
func LoadSystem(fname string) (*System, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	sys, err := ParseSystem(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if len(sys.SVD) > 0 && !filepath.IsAbs(sys.SVD) {
		sys.SVD = filepath.Join(filepath.Dir(fname), sys.SVD)
	}
	return sys, nil
}

// Target returns the chip or series the system is built for.
func (s *System) Target() string {
	if len(s.Chip) > 0 {
		return s.Chip
	}
	return s.Series
}

// ClaimJobs converts the declared jobs.
func (s *System) ClaimJobs() []claims.Job {
	jobs := make([]claims.Job, 0, len(s.Jobs))
	for _, j := range s.Jobs {
		job := claims.Job{
			UID:      j.UID,
			Name:     j.Name,
			Priority: j.Priority,
			ISR:      j.ISR,
		}
		for _, id := range j.Resources {
			job.Resources = append(job.Resources, claims.ResourceID(id))
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// Lines returns the NVIC line of each interrupt vector. Lines come from the
// device file first, a line given on a job overrides it.
func (s *System) Lines(svd string) (map[string]int16, error) {
	if len(svd) == 0 {
		svd = s.SVD
	}

	lines := map[string]int16{}
	if len(svd) > 0 {
		f, err := os.Open(svd)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		_, vectors, err := targets.ImportSVD(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", svd, err)
		}
		for name, n := range vectors {
			if n < nvic.Lines {
				lines[name] = int16(n)
			}
		}
	}

	for _, j := range s.Jobs {
		if j.IRQ != nil {
			lines[j.ISR] = *j.IRQ
		}
	}
	return lines, nil
}
