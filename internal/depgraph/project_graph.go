package depgraph

import "github.com/fortuna-build/fortuna/internal/models"

// projectGraph adapts a models.Project to the graphLike view TopoSort
// consumes.
type projectGraph struct{ proj *models.Project }

func (g projectGraph) NumFiles() int { return len(g.proj.Files) }

func (g projectGraph) DependsOn(i int) []int { return g.proj.Files[i].DependsOn }

// TopoSortProject returns the build order over proj, restricted to
// nothing (the full graph); see Restrict to project onto a subset.
func TopoSortProject(proj *models.Project) ([]int, error) {
	return TopoSort(projectGraph{proj: proj})
}

// Restrict projects a full topological order onto the indices present
// in subset, preserving their pairwise order — the "topological
// restriction" the rebuild set needs.
func Restrict(order []int, subset map[int]bool) []int {
	if len(subset) == 0 {
		return nil
	}
	restricted := make([]int, 0, len(subset))
	for _, idx := range order {
		if subset[idx] {
			restricted = append(restricted, idx)
		}
	}
	return restricted
}
