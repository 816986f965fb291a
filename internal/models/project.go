// Package models holds the value types shared by every stage of the
// build pipeline: scanned sources, the dependency graph, fingerprints,
// and the plan the orchestrator executes.
package models

import "strings"

// Kind tags what a SourceFile is, dispatching extraction and compile
// behavior from a single scan loop instead of type-switching on
// extension everywhere it matters.
type Kind int

const (
	KindFortran Kind = iota
	KindC
	KindHeader
)

func (k Kind) String() string {
	switch k {
	case KindFortran:
		return "fortran"
	case KindC:
		return "c"
	case KindHeader:
		return "header"
	default:
		return "unknown"
	}
}

// SourceFile is one discovered file. DependsOn and DefinedModules are
// populated by the extractor; Index is this file's position in the
// owning Project's Files slice, the only form other stages use to
// refer to it.
type SourceFile struct {
	Index          int
	Path           string
	Kind           Kind
	DefinedModules []string
	DependsOn      []int
}

// Basename returns the final path segment with its extension removed,
// matching the orchestrator's object-file naming rule.
func Basename(path string) string {
	p := path
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	if i := strings.LastIndex(p, "."); i > 0 {
		p = p[:i]
	}
	return p
}

// Project is the explicit build-context value threaded through every
// pipeline stage in place of any process-wide table: it owns the
// single Files arena plus the index maps built over it.
type Project struct {
	Files []*SourceFile

	// PathIndex maps an absolute path to its index in Files.
	PathIndex map[string]int

	// ModuleIndex maps a lowercased module name to the index of the
	// file that defines it. A name maps to at most one file; later
	// definitions of the same name overwrite earlier ones (last
	// write wins, matching a single global module mapping).
	ModuleIndex map[string]int

	// HeaderBasename maps a header's basename to its file index, used
	// to resolve #include "NAME" references. First scanned header
	// with a given basename wins; later collisions are dropped.
	HeaderBasename map[string]int

	// Reverse holds, for each file index, the indices of files that
	// depend on it ("is depended upon by"): the adjacency list the
	// planner's reverse-reachability DFS walks.
	Reverse [][]int

	// Excluded holds the set of paths named in exclude.files.
	Excluded map[string]bool
}

// NewProject returns an empty Project ready to receive scanned files.
func NewProject() *Project {
	return &Project{
		PathIndex:      make(map[string]int),
		ModuleIndex:    make(map[string]int),
		HeaderBasename: make(map[string]int),
		Excluded:       make(map[string]bool),
	}
}

// Add appends a SourceFile, assigning it the next index and indexing
// its path. Returns the assigned index.
func (p *Project) Add(path string, kind Kind) int {
	idx := len(p.Files)
	sf := &SourceFile{Index: idx, Path: path, Kind: kind}
	p.Files = append(p.Files, sf)
	p.PathIndex[path] = idx
	if kind == KindHeader {
		base := Basename(path) + extOf(path)
		if _, exists := p.HeaderBasename[base]; !exists {
			p.HeaderBasename[base] = idx
		}
	}
	return idx
}

func extOf(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i:]
	}
	return ""
}

// BuildReverse materializes the reverse adjacency list from each
// file's DependsOn edges. Call once after extraction completes; the
// graph is immutable for the rest of the build after this point.
func (p *Project) BuildReverse() {
	p.Reverse = make([][]int, len(p.Files))
	for _, sf := range p.Files {
		for _, dep := range sf.DependsOn {
			p.Reverse[dep] = append(p.Reverse[dep], sf.Index)
		}
	}
}

// IsExcluded reports whether path was named in the manifest's
// exclude.files list.
func (p *Project) IsExcluded(path string) bool {
	return p.Excluded[path]
}
