// Package scanner walks a project's configured source roots and
// classifies every discovered file into the Project's source table.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fortuna-build/fortuna/internal/models"
)

// fortranExts and the rest are matched by strict suffix, case
// insensitive — not by substring, which would also accept a name like
// "file.fast" (see the classifier discrepancy this intentionally
// avoids).
var fortranExts = map[string]bool{".f": true, ".f77": true, ".f90": true, ".for": true}

const cExt = ".c"
const headerExt = ".h"

// ScanError wraps a failure to open a root directory explicitly named
// in the manifest. It is fatal; a failure to stat a single file
// inside a readable directory is not (see Scan's warnings return).
type ScanError struct {
	Dir string
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan: cannot read root %s: %v", e.Dir, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Scan walks deep roots recursively and shallow roots non-recursively,
// adding every classified file to a new Project. Deep entries are
// appended after shallow entries in the returned file list. Warnings
// holds non-fatal per-file errors encountered along the way; err is
// non-nil only when a root directory itself could not be read.
func Scan(deep, shallow []string) (*models.Project, []error, error) {
	proj := models.NewProject()
	var warnings []error

	for _, root := range shallow {
		w, err := scanShallow(proj, root)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, warnings, err
		}
	}
	for _, root := range deep {
		w, err := scanDeep(proj, root)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, warnings, err
		}
	}

	return proj, warnings, nil
}

func scanShallow(proj *models.Project, root string) ([]error, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &ScanError{Dir: root, Err: err}
	}

	var warnings []error
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		full := filepath.Join(root, name)
		info, err := os.Stat(full)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("scan: skipping %s: %w", full, err))
			continue
		}
		if info.IsDir() {
			continue
		}
		addClassified(proj, full)
	}
	return warnings, nil
}

func scanDeep(proj *models.Project, root string) ([]error, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, &ScanError{Dir: root, Err: err}
	}

	var warnings []error
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, fmt.Errorf("scan: skipping %s: %w", path, err))
			return nil
		}
		if d.Type()&os.ModeSymlink == 0 && d.IsDir() {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("scan: skipping %s: %w", path, err))
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		addClassified(proj, path)
		return nil
	})
	if err != nil {
		return warnings, &ScanError{Dir: root, Err: err}
	}
	return warnings, nil
}

func addClassified(proj *models.Project, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, exists := proj.PathIndex[abs]; exists {
		return
	}

	ext := strings.ToLower(filepath.Ext(abs))
	switch {
	case fortranExts[ext]:
		proj.Add(abs, models.KindFortran)
	case ext == cExt:
		proj.Add(abs, models.KindC)
	case ext == headerExt:
		proj.Add(abs, models.KindHeader)
	}
}
