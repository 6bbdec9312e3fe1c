package claims

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// resourceBase offsets resource node IDs past every possible job UID.
const resourceBase = int64(1) << 32

// ClaimGraph is the bipartite job/resource claim relation as declared. Every
// entry of a job's resource list becomes its own line so a repeated claim
// shows up as parallel lines.
type ClaimGraph struct {
	claims    *multi.DirectedGraph
	jobs      []Job
	resources []ResourceID
	ids       map[ResourceID]int64
}

func NewClaimGraph(jobs []Job) *ClaimGraph {
	g := &ClaimGraph{
		claims: multi.NewDirectedGraph(),
		ids:    map[ResourceID]int64{},
	}

	for _, job := range jobs {
		// A repeated UID is reported by CheckJobIDs, its claims are not
		// attributed to the first job.
		from := multi.Node(int64(job.UID))
		if g.claims.Node(from.ID()) != nil {
			continue
		}
		g.claims.AddNode(from)
		g.jobs = append(g.jobs, job)

		for _, id := range job.Resources {
			to := multi.Node(g.resourceNode(id))
			g.claims.SetLine(g.claims.NewLine(from, to))
		}
	}
	return g
}

func (g *ClaimGraph) resourceNode(id ResourceID) int64 {
	if n, ok := g.ids[id]; ok {
		return n
	}
	n := resourceBase + int64(len(g.resources))
	g.ids[id] = n
	g.resources = append(g.resources, id)
	g.claims.AddNode(multi.Node(n))
	return n
}

// Duplicates reports every job that names the same resource more than once.
func (g *ClaimGraph) Duplicates() []error {
	var errs []error
	for _, job := range g.jobs {
		for _, id := range g.resources {
			lines := g.claims.Lines(int64(job.UID), g.ids[id])
			if lines != nil && lines.Len() > 1 {
				errs = append(errs, &ClaimError{Kind: ErrDuplicateJobClaim, Job: job.descriptor(), Resource: id})
			}
		}
	}
	return errs
}

// Components groups jobs that are connected through shared resources. Jobs
// in different components never mask each other through a ceiling. Each
// component is ordered by UID.
func (g *ClaimGraph) Components() [][]Job {
	shared := simple.NewUndirectedGraph()
	byUID := make(map[int64]Job, len(g.jobs))
	for _, job := range g.jobs {
		byUID[int64(job.UID)] = job
		shared.AddNode(simple.Node(int64(job.UID)))
	}

	for _, id := range g.resources {
		claimants := graph.NodesOf(g.claims.To(g.ids[id]))
		for i := 0; i < len(claimants); i++ {
			for j := i + 1; j < len(claimants); j++ {
				u, v := claimants[i].ID(), claimants[j].ID()
				if u == v || shared.HasEdgeBetween(u, v) {
					continue
				}
				shared.SetEdge(shared.NewEdge(simple.Node(u), simple.Node(v)))
			}
		}
	}

	var result [][]Job
	for _, component := range topo.ConnectedComponents(shared) {
		jobs := make([]Job, 0, len(component))
		for _, n := range component {
			jobs = append(jobs, byUID[n.ID()].descriptor())
		}
		slices.SortFunc(jobs, func(a, b Job) bool { return a.UID < b.UID })
		result = append(result, jobs)
	}
	slices.SortFunc(result, func(a, b []Job) bool { return a[0].UID < b[0].UID })
	return result
}

// Blockers returns the lower priority jobs that can defer the given job by
// holding a resource whose ceiling is at or above the job's priority. Under
// the ceiling protocol the job waits for at most one of them.
func Blockers(table Table, job Job) []Job {
	var result []Job
	for _, r := range table.resources {
		if r.Ceiling() < job.Priority {
			continue
		}
		for _, holder := range r.Jobs {
			if holder.Priority >= job.Priority || holder.Same(job) {
				continue
			}
			if slices.IndexFunc(result, holder.Same) < 0 {
				result = append(result, holder)
			}
		}
	}
	return result
}
