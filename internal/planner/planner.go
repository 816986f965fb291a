// Package planner computes the minimal rebuild set: which sources
// must be recompiled given what changed since the last successful
// build.
package planner

import (
	"os"
	"path/filepath"

	"github.com/fortuna-build/fortuna/internal/depgraph"
	"github.com/fortuna-build/fortuna/internal/hasher"
	"github.com/fortuna-build/fortuna/internal/models"
)

// Plan is the planner's full verdict for one build invocation.
type Plan struct {
	Rebuild    models.RebuildSet
	Current    models.PrevHashTable
	FullReason string // non-empty when ForceFull or an object-count mismatch forced a full rebuild
}

// Inputs bundles everything the planner needs beyond the project
// itself.
type Inputs struct {
	Project     *models.Project
	Previous    models.PrevHashTable
	ModuleDir   string
	ObjDir      string
	ForceFull   bool // -r / --rebuild: ignore caches, rebuild everything
}

// Compute runs the full algorithm from spec §4.6: hash every file,
// form Changed and Missing, close both under reverse reachability,
// and restrict the result to the topological order. A ForceFull
// request or an object-count mismatch with the current graph produces
// the full file set instead, both documented as "treat as consistent
// by rebuilding everything" rather than as failures.
func Compute(in Inputs) (*Plan, error) {
	proj := in.Project

	order, err := depgraph.TopoSortProject(proj)
	if err != nil {
		return nil, err
	}

	current := make(models.PrevHashTable, len(proj.Files))
	for _, sf := range proj.Files {
		fp, err := hasher.Fingerprint(sf.Path)
		if err != nil {
			return nil, err
		}
		current[sf.Path] = fp
	}

	if in.ForceFull {
		return fullPlan(proj, order, current, "forced full rebuild requested"), nil
	}

	if reason, mismatch := objectCountMismatch(proj, in.ObjDir); mismatch {
		return fullPlan(proj, order, current, reason), nil
	}

	changed := map[int]bool{}
	for _, sf := range proj.Files {
		prevFP, ok := in.Previous[sf.Path]
		if !ok || prevFP != current[sf.Path] {
			changed[sf.Index] = true
		}
	}

	missing := map[int]bool{}
	for _, sf := range proj.Files {
		for _, mod := range sf.DefinedModules {
			artifact := filepath.Join(in.ModuleDir, mod+".mod")
			if _, err := os.Stat(artifact); err != nil {
				missing[sf.Index] = true
			}
		}
	}

	rebuild := map[int]bool{}
	for f := range changed {
		markReverseReachable(proj, f, rebuild)
	}
	for f := range missing {
		markReverseReachable(proj, f, rebuild)
	}

	restricted := depgraph.Restrict(order, rebuild)

	return &Plan{Rebuild: models.RebuildSet(restricted), Current: current}, nil
}

// markReverseReachable performs the DFS over G^-1 that the rebuild
// planner specifies: every node reachable from f by following "is
// depended upon by" edges joins the set, idempotently.
func markReverseReachable(proj *models.Project, f int, set map[int]bool) {
	if set[f] {
		return
	}
	set[f] = true
	for _, dependent := range proj.Reverse[f] {
		markReverseReachable(proj, dependent, set)
	}
}

func fullPlan(proj *models.Project, order []int, current models.PrevHashTable, reason string) *Plan {
	all := make(map[int]bool, len(proj.Files))
	for _, sf := range proj.Files {
		all[sf.Index] = true
	}
	return &Plan{
		Rebuild:    models.RebuildSet(depgraph.Restrict(order, all)),
		Current:    current,
		FullReason: reason,
	}
}

// objectCountMismatch implements the additional guard: if the object
// directory's file count differs from the number of non-header
// sources in the current graph, any prior partial state is presumed
// inconsistent and a full rebuild is forced.
func objectCountMismatch(proj *models.Project, objDir string) (string, bool) {
	nonHeader := 0
	for _, sf := range proj.Files {
		if sf.Kind != models.KindHeader {
			nonHeader++
		}
	}

	entries, err := os.ReadDir(objDir)
	if err != nil {
		if os.IsNotExist(err) {
			if nonHeader == 0 {
				return "", false
			}
			return "object directory missing", true
		}
		return "", false
	}

	objCount := 0
	for _, e := range entries {
		if !e.IsDir() {
			objCount++
		}
	}

	if objCount != nonHeader {
		return "object count does not match source count", true
	}
	return "", false
}
