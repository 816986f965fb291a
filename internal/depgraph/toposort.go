package depgraph

import "errors"

// ErrCycle is returned by TopoSort when the dependency graph contains
// a cycle; it is distinct from a compile or link failure so callers
// can select a different exit code.
var ErrCycle = errors.New("depgraph: cyclic dependency detected")

// graphLike is the minimal view TopoSort needs over a Project,
// expressed as plain slices so it has no import cycle back to models
// and is trivial to unit-test against hand-built graphs.
type graphLike interface {
	NumFiles() int
	DependsOn(i int) []int
}

// TopoSort runs Kahn's algorithm over a graph whose forward edge
// i -> j means "i depends on j" (j must be built before i). indegree
// is seeded from each node's own DependsOn count; the queue advances
// in FIFO order, which inherits the scan order for a stable scan.
// Returns ErrCycle if fewer than NumFiles nodes are emitted.
func TopoSort(g graphLike) ([]int, error) {
	n := g.NumFiles()
	indegree := make([]int, n)
	reverse := make([][]int, n)

	for i := 0; i < n; i++ {
		deps := g.DependsOn(i)
		indegree[i] = len(deps)
		for _, dep := range deps {
			reverse[dep] = append(reverse[dep], i)
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, n)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, v := range reverse[u] {
			indegree[v]--
			if indegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(order) < n {
		return nil, ErrCycle
	}
	return order, nil
}
