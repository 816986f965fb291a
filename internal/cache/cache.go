// Package cache reads and writes the two flat dependency-cache files
// a Fortuna project keeps under .cache/: hash.dep (path -> fingerprint)
// and topo.dep (target: deps). Both are plain ASCII, line-oriented,
// and tolerant of malformed lines on load.
package cache

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fortuna-build/fortuna/internal/filelock"
	"github.com/fortuna-build/fortuna/internal/models"
)

const (
	HashFileName = "hash.dep"
	TopoFileName = "topo.dep"
)

// Dir returns the hidden cache directory for a project root.
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, ".cache")
}

// LoadHashes reads hash.dep into a PrevHashTable. Absence of the file
// means "no prior state": it returns an empty, non-nil table and no
// error. Malformed lines are skipped.
func LoadHashes(cacheDir string) (models.PrevHashTable, error) {
	table := make(models.PrevHashTable)
	path := filepath.Join(cacheDir, HashFileName)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			continue
		}
		table[fields[0]] = models.Fingerprint(n)
	}
	return table, scanner.Err()
}

// PruneObsolete removes entries from table whose path is no longer
// present in the current project's scan, per the "pruned against
// current scan" loading rule.
func PruneObsolete(table models.PrevHashTable, proj *models.Project) {
	for path := range table {
		if _, ok := proj.PathIndex[path]; !ok {
			delete(table, path)
		}
	}
}

// SaveHashes atomically (re)writes hash.dep from the current
// fingerprint table. One "PATH FINGERPRINT" line per entry, decimal.
func SaveHashes(cacheDir string, table models.PrevHashTable) error {
	var b strings.Builder
	for path, fp := range table {
		fmt.Fprintf(&b, "%s %d\n", path, uint32(fp))
	}
	return filelock.LockAndWrite(filepath.Join(cacheDir, HashFileName), []byte(b.String()))
}

// LoadDependencyLines reads topo.dep into an ordered slice of
// DependencyLine, preserving file order. Absence of the file is not
// an error; it returns nil.
func LoadDependencyLines(cacheDir string) ([]models.DependencyLine, error) {
	path := filepath.Join(cacheDir, TopoFileName)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []models.DependencyLine
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		colon := strings.Index(raw, ":")
		if colon < 0 {
			continue
		}
		target := strings.TrimSpace(raw[:colon])
		if target == "" {
			continue
		}
		rest := strings.TrimSpace(raw[colon+1:])
		var deps []string
		if rest != "" {
			deps = strings.Fields(rest)
		}
		lines = append(lines, models.DependencyLine{Target: target, Deps: deps})
	}
	return lines, scanner.Err()
}

// SaveDependencyLines atomically (re)writes topo.dep: one
// "TARGET: DEP1 DEP2 ..." line per file, in topological order.
// Headers are included as targets with possibly empty dependency
// lists, and as dependencies of any C file that includes them.
func SaveDependencyLines(cacheDir string, lines []models.DependencyLine) error {
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s: %s\n", l.Target, strings.Join(l.Deps, " "))
	}
	return filelock.LockAndWrite(filepath.Join(cacheDir, TopoFileName), []byte(b.String()))
}

// BuildDependencyLines projects the current graph into the
// DependencyLine form SaveDependencyLines writes, in the given
// topological order.
func BuildDependencyLines(proj *models.Project, order []int) []models.DependencyLine {
	lines := make([]models.DependencyLine, 0, len(order))
	for _, idx := range order {
		sf := proj.Files[idx]
		deps := make([]string, 0, len(sf.DependsOn))
		for _, d := range sf.DependsOn {
			deps = append(deps, proj.Files[d].Path)
		}
		lines = append(lines, models.DependencyLine{Target: sf.Path, Deps: deps})
	}
	return lines
}
