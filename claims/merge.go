package claims

// Merge folds resources sharing one ID into a single resource whose jobs are
// the union of the inputs. Declaration order is kept. A job appearing twice
// is rejected since a job may claim a resource only once.
func Merge(resources ...Resource) (Resource, error) {
	if len(resources) == 0 {
		return Resource{}, &ClaimError{Kind: ErrEmptyResourceClaim}
	}

	result := Resource{ID: resources[0].ID}
	for _, next := range resources {
		var err error
		if result, err = mergePair(result, next); err != nil {
			return Resource{}, err
		}
	}
	return result, nil
}

func mergePair(acc, next Resource) (Resource, error) {
	if acc.ID != next.ID {
		return Resource{}, &ClaimError{Kind: ErrIdentityMismatch, Resource: acc.ID, Other: next.ID}
	}

	if len(next.Jobs) == 0 {
		return Resource{}, &ClaimError{Kind: ErrEmptyResourceClaim, Resource: next.ID}
	}

	jobs := make([]Job, len(acc.Jobs), len(acc.Jobs)+len(next.Jobs))
	copy(jobs, acc.Jobs)
	for _, job := range next.Jobs {
		if count := countJob(jobs, job); count >= 1 {
			return Resource{}, &ClaimError{Kind: ErrDuplicateJobClaim, Job: firstJob(jobs, job), Resource: acc.ID}
		}
		jobs = append(jobs, job)
	}

	return Resource{ID: acc.ID, Jobs: jobs}, nil
}

func countJob(jobs []Job, job Job) (count int) {
	for _, j := range jobs {
		if j.Same(job) {
			count++
		}
	}
	return count
}

func firstJob(jobs []Job, job Job) Job {
	for _, j := range jobs {
		if j.Same(job) {
			return j
		}
	}
	return job
}
