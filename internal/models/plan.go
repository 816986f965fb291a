package models

// DependencyLine is one parsed line of the topo.dep cache file: a
// target path and the paths it depends on, in the order the extractor
// recorded them.
type DependencyLine struct {
	Target string
	Deps   []string
}

// RebuildSet is the ordered sequence of file indices to recompile,
// already restricted to the topological order of the full graph.
type RebuildSet []int

// Contains reports whether idx is present in the set.
func (rs RebuildSet) Contains(idx int) bool {
	for _, v := range rs {
		if v == idx {
			return true
		}
	}
	return false
}

// CompileJob pairs a SourceFile index with its fully-formed compile
// command. Immutable once enqueued; a worker consumes it and reports
// back only an exit status.
type CompileJob struct {
	FileIndex int
	Command   []string
}

// BuildPlan is the orchestrator's complete instruction set for one
// build invocation.
type BuildPlan struct {
	Rebuild         RebuildSet
	LinkRequired    bool
	ArchiveRequired bool
	LibOnly         bool
}
