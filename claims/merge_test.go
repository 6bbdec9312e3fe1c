package claims

import (
	"errors"
	"testing"

	"golang.org/x/exp/slices"
)

func job(uid uint32, priority uint8, resources ...ResourceID) Job {
	return Job{UID: uid, Priority: priority, ISR: "IRQ", Resources: resources}
}

func uids(jobs []Job) []uint32 {
	result := make([]uint32, len(jobs))
	for i, j := range jobs {
		result[i] = j.UID
	}
	return result
}

func claim(id ResourceID, jobs ...Job) Resource {
	return Resource{ID: id, Jobs: jobs}
}

func TestMerge(t *testing.T) {
	j1, j2, j3 := job(1, 1), job(2, 2), job(3, 3)

	tests := []struct {
		name     string
		input    []Resource
		expected []uint32
		err      error
	}{
		{"single", []Resource{claim("r", j1)}, []uint32{1}, nil},
		{"pair", []Resource{claim("r", j1), claim("r", j3)}, []uint32{1, 3}, nil},
		{"multiple jobs per claim", []Resource{claim("r", j1, j2), claim("r", j3)}, []uint32{1, 2, 3}, nil},
		{"declaration order", []Resource{claim("r", j3), claim("r", j1), claim("r", j2)}, []uint32{3, 1, 2}, nil},
		{"duplicate", []Resource{claim("r", j1), claim("r", j2), claim("r", j1)}, nil, ErrDuplicateJobClaim},
		{"duplicate inside one claim", []Resource{claim("r", j1, j1)}, nil, ErrDuplicateJobClaim},
		{"empty input", nil, nil, ErrEmptyResourceClaim},
		{"claim without jobs", []Resource{claim("r", j1), claim("r")}, nil, ErrEmptyResourceClaim},
		{"mismatched ids", []Resource{claim("r", j1), claim("s", j2)}, nil, ErrIdentityMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result, err := Merge(tc.input...)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected error %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ID != "r" {
				t.Errorf("expected resource r, got %q", result.ID)
			}
			if got := uids(result.Jobs); !slices.Equal(got, tc.expected) {
				t.Errorf("expected jobs %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestMergeDuplicateDiagnostic(t *testing.T) {
	first := Job{UID: 7, Name: "first", Priority: 2}
	second := Job{UID: 7, Name: "second", Priority: 2}

	_, err := Merge(claim("adc", first), claim("adc", second))

	var claimErr *ClaimError
	if !errors.As(err, &claimErr) {
		t.Fatalf("expected *ClaimError, got %T", err)
	}
	if claimErr.Job.Name != "first" {
		t.Errorf("expected the first seen job in the diagnostic, got %s", claimErr.Job)
	}
	if claimErr.Resource != "adc" {
		t.Errorf("expected resource adc, got %q", claimErr.Resource)
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	inputs := []Resource{
		claim("r", job(1, 1)),
		claim("r", job(2, 4), job(5, 2)),
		claim("r", job(3, 3)),
		claim("r", job(4, 1)),
	}

	// Every rotation and its reverse must produce the same membership.
	for shift := range inputs {
		for _, reverse := range []bool{false, true} {
			permuted := append(slices.Clone(inputs[shift:]), inputs[:shift]...)
			if reverse {
				for i, j := 0, len(permuted)-1; i < j; i, j = i+1, j-1 {
					permuted[i], permuted[j] = permuted[j], permuted[i]
				}
			}

			result, err := Merge(permuted...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := uids(result.Jobs)
			slices.Sort(got)
			if expected := []uint32{1, 2, 3, 4, 5}; !slices.Equal(got, expected) {
				t.Errorf("shift %d reverse %v: expected %v, got %v", shift, reverse, expected, got)
			}
			if result.Ceiling() != 4 {
				t.Errorf("expected ceiling 4, got %d", result.Ceiling())
			}
		}
	}
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := claim("r", job(1, 1))
	if _, err := Merge(base, claim("r", job(2, 2))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(base.Jobs) != 1 {
		t.Errorf("input resource was modified: %v", uids(base.Jobs))
	}
}
