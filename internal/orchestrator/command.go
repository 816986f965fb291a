// Package orchestrator constructs compile and link commands for the
// rebuild set and dispatches them, optionally across a bounded worker
// pool, preserving module-availability ordering.
package orchestrator

import (
	"fmt"
	"path/filepath"

	"github.com/fortuna-build/fortuna/internal/config"
	"github.com/fortuna-build/fortuna/internal/models"
)

// CompileCommand builds the compiler invocation for sf, matching §4.7's
// exact templates: Fortran gets -J{mod_dir}, C does not.
func CompileCommand(sf *models.SourceFile, m *config.Manifest) []string {
	objPath := filepath.Join(m.Build.ObjDir, models.Basename(sf.Path)+".o")

	args := []string{m.Build.Compiler}
	args = append(args, m.Build.Flags...)
	if sf.Kind == models.KindFortran {
		args = append(args, "-J"+m.Build.ModDir)
	}
	args = append(args, "-c", sf.Path, "-o", objPath)
	return args
}

// ObjectPath returns the object file path a source compiles to.
func ObjectPath(sf *models.SourceFile, m *config.Manifest) string {
	return filepath.Join(m.Build.ObjDir, models.Basename(sf.Path)+".o")
}

// LinkCommand builds the final executable link line: the compiler,
// flags, every object file for the given non-header, non-excluded
// sources (in topological order), configured extra libraries, then
// -o target.
func LinkCommand(proj *models.Project, order []int, m *config.Manifest) ([]string, error) {
	args := []string{m.Build.Compiler}
	args = append(args, m.Build.Flags...)

	for _, idx := range order {
		sf := proj.Files[idx]
		if sf.Kind == models.KindHeader || proj.IsExcluded(sf.Path) {
			continue
		}
		objPath := ObjectPath(sf, m)
		if !fileExists(objPath) {
			return nil, &LinkError{Reason: fmt.Sprintf("missing object file %s", objPath)}
		}
		args = append(args, objPath)
	}

	if libs, ok := m.GetArray("library.source-libs"); ok {
		args = append(args, libs...)
	}

	args = append(args, "-o", m.Build.Target)
	return args, nil
}

// ArchiveCommand builds the `ar rcs lib/{name} obj1 obj2 ...` command
// for the configured library archive target, anchored under
// projectRoot like the compile and link targets.
func ArchiveCommand(proj *models.Project, order []int, m *config.Manifest, projectRoot string) ([]string, error) {
	libTarget, ok := m.GetString("lib.target")
	if !ok {
		return nil, nil
	}

	args := []string{"ar", "rcs", filepath.Join(projectRoot, "lib", libTarget)}
	for _, idx := range order {
		sf := proj.Files[idx]
		if sf.Kind == models.KindHeader || proj.IsExcluded(sf.Path) {
			continue
		}
		objPath := ObjectPath(sf, m)
		if !fileExists(objPath) {
			return nil, &LinkError{Reason: fmt.Sprintf("missing object file %s", objPath)}
		}
		args = append(args, objPath)
	}
	return args, nil
}

// LinkError is fatal per the error taxonomy: object files remain on
// disk so subsequent incremental builds can resume.
type LinkError struct {
	Reason string
}

func (e *LinkError) Error() string { return "orchestrator: link failed: " + e.Reason }

// CompileError is fatal; caches must not be updated when this occurs.
type CompileError struct {
	Path     string
	ExitCode int
	Output   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("orchestrator: compile failed for %s (exit %d): %s", e.Path, e.ExitCode, e.Output)
}
