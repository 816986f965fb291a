package orchestrator

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fortuna-build/fortuna/internal/config"
	"github.com/fortuna-build/fortuna/internal/depgraph"
	"github.com/fortuna-build/fortuna/internal/logger"
	"github.com/fortuna-build/fortuna/internal/models"
)

// Options controls one orchestrator run.
type Options struct {
	Parallel   bool
	MaxWorkers int
	LibOnly    bool

	// ProjectRoot anchors the configured archive target; compile,
	// link, and module-directory paths are already made absolute by
	// the caller before Run is invoked.
	ProjectRoot string

	// ShowProgress renders a progress bar as compile jobs complete
	// during a parallel wave.
	ShowProgress bool
}

// Result is the orchestrator's outcome for one build invocation.
type Result struct {
	Compiled []int // file indices actually compiled
	Linked   bool
	Archived bool
}

type jobResult struct {
	fileIndex int
	err       error
	compiled  bool // true when compileOne actually invoked the compiler
	skipped   bool // true when the job never ran because the wave was already aborted
}

// Run compiles every source named in rebuild (skipping excluded
// files), grouped into topological waves so a cold cache can never
// compile a dependent before a dependency's module artifact exists
// (the safety improvement over the source driver noted in the design
// notes). Within a wave, jobs run across a bounded worker pool when
// Options.Parallel is set; the pool shares no mutable state beyond an
// atomic abort flag used to stop starting new work after the first
// failure, letting already-dispatched workers finish.
func Run(proj *models.Project, rebuild models.RebuildSet, m *config.Manifest, r Runner, opts Options) (*Result, error) {
	res := &Result{}

	waves := waveFront(proj, rebuild)

	var aborted atomic.Bool
	var firstErr error
	var errMu sync.Mutex

	maxWorkers := opts.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var pb *logger.ProgressBar
	if opts.ShowProgress && opts.Parallel && len(rebuild) > 0 {
		pb = logger.NewProgressBar(len(rebuild), 30, false)
		pb.SetPrefix("compiling ")
	}

	for _, wave := range waves {
		if aborted.Load() {
			break
		}

		if !opts.Parallel || len(wave) == 1 {
			for _, idx := range wave {
				if aborted.Load() {
					break
				}
				compiled, err := compileOne(proj, idx, m, r, opts.LibOnly)
				if err != nil {
					aborted.Store(true)
					firstErr = err
					break
				}
				if compiled {
					res.Compiled = append(res.Compiled, idx)
					if pb != nil {
						pb.Increment()
						fmt.Fprintln(os.Stdout, pb.Render())
					}
				}
			}
			continue
		}

		sem := make(chan struct{}, maxWorkers)
		resultsCh := make(chan jobResult, len(wave))
		var wg sync.WaitGroup

		for _, idx := range wave {
			if aborted.Load() {
				break
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(fileIdx int) {
				defer wg.Done()
				defer func() { <-sem }()
				if aborted.Load() {
					resultsCh <- jobResult{fileIndex: fileIdx, skipped: true}
					return
				}
				compiled, err := compileOne(proj, fileIdx, m, r, opts.LibOnly)
				if err != nil {
					aborted.Store(true)
				}
				resultsCh <- jobResult{fileIndex: fileIdx, err: err, compiled: compiled}
			}(idx)
		}
		wg.Wait()
		close(resultsCh)

		for jr := range resultsCh {
			if jr.skipped {
				continue
			}
			if jr.err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = jr.err
				}
				errMu.Unlock()
				aborted.Store(true)
				continue
			}
			if jr.compiled {
				res.Compiled = append(res.Compiled, jr.fileIndex)
				if pb != nil {
					pb.Increment()
					fmt.Fprintln(os.Stdout, pb.Render())
				}
			}
		}
	}

	if firstErr != nil {
		return res, firstErr
	}

	order, err := depgraph.TopoSortProject(proj)
	if err != nil {
		return res, err
	}

	if !opts.LibOnly {
		args, err := LinkCommand(proj, order, m)
		if err != nil {
			return res, err
		}
		code, output, err := r.Run(args)
		if err != nil {
			return res, err
		}
		if code != 0 {
			return res, &LinkError{Reason: output}
		}
		res.Linked = true
	}

	archiveArgs, err := ArchiveCommand(proj, order, m, opts.ProjectRoot)
	if err != nil {
		return res, err
	}
	if archiveArgs != nil {
		code, output, err := r.Run(archiveArgs)
		if err != nil {
			return res, err
		}
		if code != 0 {
			return res, &LinkError{Reason: output}
		}
		res.Archived = true
	}

	return res, nil
}

// compileOne runs the compiler for one file. compiled reports whether
// the compiler was actually invoked; it is false for headers and
// excluded files, which are no-op skips rather than compiles, so
// callers must not count them toward Result.Compiled.
func compileOne(proj *models.Project, idx int, m *config.Manifest, r Runner, libOnly bool) (compiled bool, err error) {
	sf := proj.Files[idx]
	if sf.Kind == models.KindHeader || proj.IsExcluded(sf.Path) {
		return false, nil
	}
	args := CompileCommand(sf, m)
	code, output, err := r.Run(args)
	if err != nil {
		return false, err
	}
	if code != 0 {
		return false, &CompileError{Path: sf.Path, ExitCode: code, Output: output}
	}
	return true, nil
}

// waveFront groups the rebuild set into topological layers: a file
// lands in the first wave after all of its DependsOn entries that are
// also in the rebuild set.
func waveFront(proj *models.Project, rebuild models.RebuildSet) [][]int {
	inSet := make(map[int]bool, len(rebuild))
	for _, idx := range rebuild {
		inSet[idx] = true
	}

	layer := make(map[int]int, len(rebuild))
	var assign func(idx int) int
	assign = func(idx int) int {
		if l, ok := layer[idx]; ok {
			return l
		}
		max := -1
		for _, dep := range proj.Files[idx].DependsOn {
			if !inSet[dep] {
				continue
			}
			if l := assign(dep); l > max {
				max = l
			}
		}
		layer[idx] = max + 1
		return max + 1
	}

	maxLayer := -1
	for _, idx := range rebuild {
		l := assign(idx)
		if l > maxLayer {
			maxLayer = l
		}
	}

	waves := make([][]int, maxLayer+1)
	for _, idx := range rebuild {
		l := layer[idx]
		waves[l] = append(waves[l], idx)
	}
	return waves
}
