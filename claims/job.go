package claims

import "fmt"

// ResourceID identifies a shared resource. Resources carrying the same ID
// are the same resource.
type ResourceID string

// Job describes one interrupt driven unit of work. Priority is the logical
// priority: a larger value is more urgent.
type Job struct {
	UID       uint32
	Name      string
	Priority  uint8
	ISR       string
	Resources []ResourceID
}

func (j Job) String() string {
	if len(j.Name) > 0 {
		return fmt.Sprintf("%d (%s)", j.UID, j.Name)
	}
	return fmt.Sprintf("%d", j.UID)
}

// Same reports whether both descriptors name the same job.
func (j Job) Same(other Job) bool {
	return j.UID == other.UID
}

// descriptor returns the job without its resource list. Resources refer
// back to their claimants by identity only.
func (j Job) descriptor() Job {
	j.Resources = nil
	return j
}

// Resource is one shared entity together with the jobs that claim it.
type Resource struct {
	ID   ResourceID
	Jobs []Job
}

// Ceiling returns the most urgent priority among the claiming jobs.
func (r Resource) Ceiling() uint8 {
	var ceiling uint8
	for _, job := range r.Jobs {
		if job.Priority > ceiling {
			ceiling = job.Priority
		}
	}
	return ceiling
}

// Claims returns the resources named by the job, each claimed by the job
// alone, in declaration order.
func Claims(job Job) []Resource {
	result := make([]Resource, 0, len(job.Resources))
	for _, id := range job.Resources {
		result = append(result, Resource{
			ID:   id,
			Jobs: []Job{job.descriptor()},
		})
	}
	return result
}
