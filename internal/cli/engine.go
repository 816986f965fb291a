package cli

import (
	"path/filepath"
	"time"

	"github.com/fortuna-build/fortuna/internal/cache"
	"github.com/fortuna-build/fortuna/internal/config"
	"github.com/fortuna-build/fortuna/internal/depgraph"
	"github.com/fortuna-build/fortuna/internal/history"
	"github.com/fortuna-build/fortuna/internal/logger"
	"github.com/fortuna-build/fortuna/internal/orchestrator"
	"github.com/fortuna-build/fortuna/internal/planner"
	"github.com/fortuna-build/fortuna/internal/scanner"
)

// buildOptions captures the flags build and run share.
type buildOptions struct {
	Parallel    bool
	ForceFull   bool
	LibOnly     bool
	RecordStats bool
}

// runBuild executes one full engine pass: scan, extract, plan,
// compile/link, then persist the cache files and a history row. It
// returns a non-nil error for any fatal condition in the taxonomy;
// the cache files are only rewritten after a fully successful build.
func runBuild(projectRoot string, log *logger.ConsoleLogger, opts buildOptions) error {
	started := time.Now()

	if abs, err := filepath.Abs(projectRoot); err == nil {
		projectRoot = abs
	}

	manifestPath := filepath.Join(projectRoot, config.ManifestFileName)
	m, err := config.Load(manifestPath)
	if err != nil {
		log.Error("%v", err)
		return err
	}

	deep, _ := m.GetArray("search.deep")
	shallow, _ := m.GetArray("search.shallow")
	excludeList, _ := m.GetArray("exclude.files")

	proj, warnings, err := scanner.Scan(resolveAll(projectRoot, deep), resolveAll(projectRoot, shallow))
	if err != nil {
		log.Error("%v", err)
		return err
	}
	for _, w := range warnings {
		log.Warn("%v", w)
	}
	for _, ex := range excludeList {
		proj.Excluded[filepath.Join(projectRoot, ex)] = true
	}

	if extractWarnings := depgraph.Extract(proj); len(extractWarnings) > 0 {
		for _, w := range extractWarnings {
			log.Warn("%v", w)
		}
	}

	if _, err := depgraph.TopoSortProject(proj); err != nil {
		log.Error("%v", err)
		return err
	}

	cacheDir := cache.Dir(projectRoot)
	prevHashes, err := cache.LoadHashes(cacheDir)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	cache.PruneObsolete(prevHashes, proj)

	modDir := filepath.Join(projectRoot, m.Build.ModDir)
	objDir := filepath.Join(projectRoot, m.Build.ObjDir)

	plan, err := planner.Compute(planner.Inputs{
		Project:   proj,
		Previous:  prevHashes,
		ModuleDir: modDir,
		ObjDir:    objDir,
		ForceFull: opts.ForceFull,
	})
	if err != nil {
		log.Error("%v", err)
		return err
	}
	if plan.FullReason != "" {
		log.Warn("falling back to full rebuild: %s", plan.FullReason)
	}

	libTarget, hasLib := m.GetString("lib.target")

	if len(plan.Rebuild) == 0 && !(hasLib && libTarget != "") {
		log.OK("nothing to build")
		recordHistory(cacheDir, opts, len(proj.Files), 0, started, true, plan.FullReason != "", "")
		return nil
	}

	scopedManifest := *m
	scopedManifest.Build.ObjDir = objDir
	scopedManifest.Build.ModDir = modDir
	scopedManifest.Build.Target = filepath.Join(projectRoot, m.Build.Target)

	maxWorkers := 1
	if opts.Parallel {
		maxWorkers = 8
	}

	result, err := orchestrator.Run(proj, plan.Rebuild, &scopedManifest, orchestrator.ProcessRunner{}, orchestrator.Options{
		Parallel:     opts.Parallel,
		MaxWorkers:   maxWorkers,
		LibOnly:      opts.LibOnly,
		ProjectRoot:  projectRoot,
		ShowProgress: true,
	})

	duration := time.Since(started)

	if err != nil {
		log.Error("%v", err)
		recordHistory(cacheDir, opts, len(proj.Files), len(result.Compiled), started, false, plan.FullReason != "", err.Error())
		return err
	}

	order, err := depgraph.TopoSortProject(proj)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	if err := cache.SaveDependencyLines(cacheDir, cache.BuildDependencyLines(proj, order)); err != nil {
		log.Error("%v", err)
		return err
	}
	if err := cache.SaveHashes(cacheDir, plan.Current); err != nil {
		log.Error("%v", err)
		return err
	}

	log.Summary(logger.BuildSummary{
		SourcesTotal:    len(proj.Files),
		SourcesRebuilt:  len(result.Compiled),
		DurationSeconds: duration.Seconds(),
	})

	recordHistory(cacheDir, opts, len(proj.Files), len(result.Compiled), started, true, plan.FullReason != "", "")
	return nil
}

func recordHistory(cacheDir string, opts buildOptions, total, rebuilt int, started time.Time, success, full bool, errMsg string) {
	if !opts.RecordStats {
		return
	}
	store, err := history.NewStore(filepath.Join(cacheDir, "history.db"))
	if err != nil {
		return
	}
	defer store.Close()
	_ = store.Record(history.Run{
		StartedAt:      started,
		Duration:       time.Since(started),
		SourcesTotal:   total,
		SourcesRebuilt: rebuilt,
		Parallel:       opts.Parallel,
		Success:        success,
		FullRebuild:    full,
		ErrorMessage:   errMsg,
	})
}

func resolveAll(root string, dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, filepath.Join(root, d))
	}
	return out
}

func printStats(log *logger.ConsoleLogger, projectRoot string) error {
	store, err := history.NewStore(filepath.Join(cache.Dir(projectRoot), "history.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(10)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Info("no recorded builds yet")
		return nil
	}
	for _, r := range runs {
		log.Info("%s: %d/%d rebuilt in %s", r.StartedAt.Format(time.RFC3339), r.SourcesRebuilt, r.SourcesTotal, r.Duration)
	}
	return nil
}
