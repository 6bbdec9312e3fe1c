package claims

import (
	"errors"
	"testing"

	"golang.org/x/exp/slices"
)

func TestClaimGraphDuplicates(t *testing.T) {
	g := NewClaimGraph([]Job{
		job(1, 1, "R", "R", "S"),
		job(2, 2, "S", "T", "T"),
		job(3, 3, "R"),
	})

	errs := g.Duplicates()
	if len(errs) != 2 {
		t.Fatalf("expected 2 duplicates, got %d: %v", len(errs), errs)
	}

	expected := []struct {
		uid uint32
		id  ResourceID
	}{{1, "R"}, {2, "T"}}
	for i, err := range errs {
		var claimErr *ClaimError
		if !errors.As(err, &claimErr) || !errors.Is(err, ErrDuplicateJobClaim) {
			t.Fatalf("unexpected error %v", err)
		}
		if claimErr.Job.UID != expected[i].uid || claimErr.Resource != expected[i].id {
			t.Errorf("expected job %d on %q, got %v", expected[i].uid, expected[i].id, claimErr)
		}
	}
}

func TestClaimGraphRepeatedUID(t *testing.T) {
	g := NewClaimGraph([]Job{
		job(1, 1, "R"),
		job(1, 2, "R", "S"),
	})

	if errs := g.Duplicates(); len(errs) != 0 {
		t.Errorf("expected no duplicate claims, got %v", errs)
	}

	components := g.Components()
	if len(components) != 1 || !slices.Equal(uids(components[0]), []uint32{1}) {
		t.Errorf("expected a single job, got %v", components)
	}
}

func TestClaimGraphComponents(t *testing.T) {
	g := NewClaimGraph([]Job{
		job(1, 1, "uart"),
		job(2, 2, "spi"),
		job(3, 3, "uart"),
		job(4, 4),
		job(5, 2, "spi", "can"),
		job(6, 1, "can"),
	})

	var got [][]uint32
	for _, component := range g.Components() {
		got = append(got, uids(component))
	}

	expected := [][]uint32{{1, 3}, {2, 5, 6}, {4}}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if !slices.Equal(got[i], expected[i]) {
			t.Errorf("component %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestBlockers(t *testing.T) {
	j1 := job(1, 1, "R")
	j2 := job(2, 2)
	j3 := job(3, 3, "R")
	j4 := job(4, 4)

	table, err := BuildTable([]Job{j1, j2, j3, j4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		job      Job
		expected []uint32
	}{
		{j1, nil},
		{j2, []uint32{1}},
		{j3, []uint32{1}},
		{j4, nil},
	}

	for _, tc := range tests {
		if got := uids(Blockers(table, tc.job)); !slices.Equal(got, tc.expected) {
			t.Errorf("job %d: expected blockers %v, got %v", tc.job.UID, tc.expected, got)
		}
	}
}
