package claims

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Table holds one resource per distinct ID. It is built once and never
// modified afterwards, all accessors hand out copies.
type Table struct {
	resources []Resource
	index     map[ResourceID]int
}

func newTable(resources []Resource) Table {
	t := Table{
		resources: resources,
		index:     make(map[ResourceID]int, len(resources)),
	}
	for i, r := range resources {
		t.index[r.ID] = i
	}
	return t
}

func (t Table) Len() int {
	return len(t.resources)
}

// Lookup returns the resource with the given ID.
func (t Table) Lookup(id ResourceID) (Resource, bool) {
	i, ok := t.index[id]
	if !ok {
		return Resource{}, false
	}
	return cloneResource(t.resources[i]), true
}

// Claimants returns the jobs that may access the resource.
func (t Table) Claimants(id ResourceID) []Job {
	r, _ := t.Lookup(id)
	return r.Jobs
}

// Ceiling returns the ceiling priority of the resource, or 0 if the table
// does not contain it.
func (t Table) Ceiling(id ResourceID) uint8 {
	i, ok := t.index[id]
	if !ok {
		return 0
	}
	return t.resources[i].Ceiling()
}

// Resources returns every entry in order of first appearance.
func (t Table) Resources() []Resource {
	result := make([]Resource, len(t.resources))
	for i, r := range t.resources {
		result[i] = cloneResource(r)
	}
	return result
}

// IDs returns the resource IDs sorted lexically.
func (t Table) IDs() []ResourceID {
	ids := maps.Keys(t.index)
	slices.Sort(ids)
	return ids
}

func cloneResource(r Resource) Resource {
	return Resource{
		ID:   r.ID,
		Jobs: slices.Clone(r.Jobs),
	}
}
