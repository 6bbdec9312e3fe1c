package claims

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateJobClaim  = errors.New("job claimed the same resource more than once")
	ErrEmptyResourceClaim = errors.New("resource has no claiming jobs")
	ErrIdentityMismatch   = errors.New("merging different resources is not allowed")
	ErrDuplicateJobID     = errors.New("duplicate jobs defined, each job must have a unique ID")
)

// ClaimError is the diagnostic produced when the claim relation is invalid.
// Kind is one of the sentinel errors above and is what errors.Is matches.
type ClaimError struct {
	Kind     error
	Job      Job
	Resource ResourceID
	Other    ResourceID
}

func (e *ClaimError) Error() string {
	switch e.Kind {
	case ErrDuplicateJobClaim:
		return fmt.Sprintf("%v: job %s on resource %q", e.Kind, e.Job, e.Resource)
	case ErrDuplicateJobID:
		return fmt.Sprintf("%v: job %s", e.Kind, e.Job)
	case ErrIdentityMismatch:
		return fmt.Sprintf("%v: %q and %q", e.Kind, e.Resource, e.Other)
	default:
		return fmt.Sprintf("%v: %q", e.Kind, e.Resource)
	}
}

func (e *ClaimError) Unwrap() error {
	return e.Kind
}
