package claims

import "errors"

// BuildTree partitions a flat list of resource claims into one merged
// resource per distinct ID. The first element is taken as the pivot, every
// claim sharing its ID is merged and the remainder is partitioned again.
// Diagnostics of all partitions are reported together.
func BuildTree(resources []Resource) (Table, error) {
	merged, err := partition(resources)
	if err != nil {
		return Table{}, err
	}
	return newTable(merged), nil
}

func partition(resources []Resource) ([]Resource, error) {
	if len(resources) == 0 {
		return nil, nil
	}

	pivot := resources[0].ID
	same, rest := split(resources, pivot)

	var errs []error
	result := make([]Resource, 0, 1)
	if resource, err := Merge(same...); err != nil {
		errs = append(errs, err)
	} else {
		result = append(result, resource)
	}

	tail, err := partition(rest)
	if err != nil {
		errs = append(errs, err)
	}
	result = append(result, tail...)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return result, nil
}

// split returns the claims carrying the given ID and those that do not. The
// relative order of both is preserved.
func split(resources []Resource, id ResourceID) (same, rest []Resource) {
	for _, r := range resources {
		if r.ID == id {
			same = append(same, r)
		} else {
			rest = append(rest, r)
		}
	}
	return same, rest
}

// CheckJobIDs reports jobs sharing a UID with an earlier job.
func CheckJobIDs(jobs []Job) []error {
	var errs []error
	seen := make(map[uint32]Job, len(jobs))
	for _, job := range jobs {
		if first, ok := seen[job.UID]; ok {
			errs = append(errs, &ClaimError{Kind: ErrDuplicateJobID, Job: first.descriptor()})
			continue
		}
		seen[job.UID] = job
	}
	return errs
}

// BuildTable creates the resource table for a closed set of jobs.
func BuildTable(jobs []Job) (Table, error) {
	if errs := CheckJobIDs(jobs); len(errs) > 0 {
		return Table{}, errors.Join(errs...)
	}

	var flat []Resource
	for _, job := range jobs {
		flat = append(flat, Claims(job)...)
	}
	return BuildTree(flat)
}

// MustBuildTable is like BuildTable but panics if the jobs are invalid.
func MustBuildTable(jobs []Job) Table {
	table, err := BuildTable(jobs)
	if err != nil {
		panic(err)
	}
	return table
}
