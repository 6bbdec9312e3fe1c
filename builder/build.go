package builder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"

	"omibyte.io/ceiling/claims"
	"omibyte.io/ceiling/codegen"
	"omibyte.io/ceiling/nvic"
	"omibyte.io/ceiling/targets"
)

// Result is a validated system.
type Result struct {
	System *System
	Target targets.TargetInfo
	Jobs   []claims.Job
	Table  claims.Table
	Graph  *claims.ClaimGraph

	// Set by Build only.
	Source []byte
	Output string
}

// Check loads the system declaration and builds its resource table. Every
// violation found is reported, joined into one error.
func Check(ctx context.Context, options Options) (*Result, error) {
	if len(options.System) == 0 {
		return nil, ErrMissingSystemSource
	}

	sys, err := LoadSystem(options.System)
	if err != nil {
		return nil, err
	}
	return CheckSystem(ctx, sys, options)
}

// CheckSystem validates an already decoded declaration.
func CheckSystem(ctx context.Context, sys *System, options Options) (*Result, error) {
	target, err := resolveTarget(sys, options)
	if err != nil {
		return nil, err
	}

	jobs := sys.ClaimJobs()
	result := &Result{
		System: sys,
		Target: target,
		Jobs:   jobs,
		Graph:  claims.NewClaimGraph(jobs),
	}

	errs := validate(sys, jobs, target)
	errs = append(errs, claims.CheckJobIDs(jobs)...)
	errs = append(errs, result.Graph.Duplicates()...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if result.Table, err = claims.BuildTable(jobs); err != nil {
		return nil, err
	}

	if err = checkDeclared(sys, result.Table); err != nil {
		return nil, err
	}
	return result, nil
}

// Build checks the system and writes the generated binding.
func Build(ctx context.Context, options Options) (*Result, error) {
	result, err := Check(ctx, options)
	if err != nil {
		return nil, err
	}

	pkg := options.Package
	if len(pkg) == 0 {
		pkg = result.System.Package
	}
	if len(pkg) == 0 {
		pkg = options.Environment.Value("SRPC_PACKAGE")
	}
	if len(pkg) == 0 {
		return nil, fmt.Errorf("%w: missing package name", ErrInvalidSystem)
	}

	lines, err := result.System.Lines(options.SVD)
	if err != nil {
		return nil, err
	}

	tags := slices.Clone(options.BuildTags)
	if result.Target.HasBasepri() && !slices.Contains(tags, "cortexm") {
		tags = append(tags, "cortexm")
	}

	result.Source, err = codegen.Generate(codegen.Config{
		Package: pkg,
		Source:  filepath.Base(options.System),
		Tags:    tags,
		Target:  result.Target,
		Jobs:    result.Jobs,
		Table:   result.Table,
		Lines:   lines,
	})
	if err != nil {
		return nil, err
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if result.Output, err = outputPath(options.Output, pkg); err != nil {
		return nil, err
	}
	if options.DryRun {
		return result, nil
	}
	return result, writeFile(result.Output, result.Source)
}

func resolveTarget(sys *System, options Options) (targets.TargetInfo, error) {
	db := targets.All()
	if fname := options.Environment.Value("SRPC_TARGETS"); len(fname) > 0 {
		var err error
		if db, err = targets.Load(fname); err != nil {
			return targets.TargetInfo{}, err
		}
	}

	name := options.Target
	if len(name) == 0 {
		name = sys.Target()
	}
	if len(name) == 0 {
		name = options.Environment.Value("SRPC_TARGET")
	}
	if len(name) == 0 {
		return targets.TargetInfo{}, ErrMissingTarget
	}
	return db.Find(name)
}

func validate(sys *System, jobs []claims.Job, target targets.TargetInfo) (errs []error) {
	enc := target.Encoding()
	vectors := map[string]claims.Job{}

	declared := map[string]bool{}
	for _, id := range sys.Resources {
		if declared[id] {
			errs = append(errs, fmt.Errorf("%w: resource %q declared twice", ErrInvalidSystem, id))
		}
		declared[id] = true
	}

	for _, j := range sys.Jobs {
		if j.IRQ != nil && (*j.IRQ < 0 || *j.IRQ >= nvic.Lines) {
			errs = append(errs, fmt.Errorf("%w: job %d has irq %d, the NVIC allows 0..%d", ErrInvalidSystem, j.UID, *j.IRQ, nvic.Lines-1))
		}
	}

	for _, job := range jobs {
		if strings.IndexFunc(job.Name, unicode.IsControl) >= 0 {
			errs = append(errs, fmt.Errorf("%w: job %d has a name with control characters: %q", ErrInvalidSystem, job.UID, job.Name))
		}

		if !enc.Valid(job.Priority) {
			errs = append(errs, fmt.Errorf("%w: job %s has priority %d, %s allows 1..%d",
				ErrPriorityOutOfRange, job, job.Priority, target.Series, enc.Max()))
		}

		if len(job.ISR) == 0 {
			errs = append(errs, fmt.Errorf("%w: job %s is not bound to an interrupt", ErrInvalidSystem, job))
		} else if other, ok := vectors[job.ISR]; ok {
			errs = append(errs, fmt.Errorf("%w: %s used by jobs %s and %s", ErrDuplicateVector, job.ISR, other, job))
		} else {
			vectors[job.ISR] = job
		}

		for _, id := range job.Resources {
			if len(strings.TrimSpace(string(id))) == 0 {
				errs = append(errs, fmt.Errorf("%w: job %s claims a resource without a name", ErrInvalidSystem, job))
			} else if len(sys.Resources) > 0 && !declared[string(id)] {
				errs = append(errs, fmt.Errorf("%w: job %s claims %q", ErrUndeclaredResource, job, id))
			}
		}
	}
	return errs
}

// checkDeclared reports declared resources that no job claims.
func checkDeclared(sys *System, table claims.Table) error {
	var errs []error
	for _, id := range sys.Resources {
		if _, ok := table.Lookup(claims.ResourceID(id)); !ok {
			errs = append(errs, &claims.ClaimError{Kind: claims.ErrEmptyResourceClaim, Resource: claims.ResourceID(id)})
		}
	}
	return errors.Join(errs...)
}

func outputPath(output, pkg string) (string, error) {
	if len(output) == 0 {
		output = "."
	}
	if strings.HasSuffix(output, ".go") {
		return output, nil
	}
	if info, err := os.Stat(output); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedOutput, output)
	}
	return filepath.Join(output, pkg+"_srp.go"), nil
}

func writeFile(fname string, data []byte) error {
	// The path to the output must exist. Create it if it doesn't
	if stat, err := os.Stat(filepath.Dir(fname)); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(fname), 0750); err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else if !stat.IsDir() {
		return os.ErrInvalid
	}
	return os.WriteFile(fname, data, 0644)
}
