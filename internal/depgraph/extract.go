// Package depgraph builds the dependency graph over a scanned Project
// and produces its topological build order.
package depgraph

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fortuna-build/fortuna/internal/models"
)

// ExtractError wraps a failure to read a source during extraction. It
// is non-fatal: the caller should warn and continue treating the file
// as having no dependencies, per the extraction error policy.
type ExtractError struct {
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract: cannot read %s: %v", e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// Extract runs the two required passes over every file in proj: first
// collecting Fortran module definitions project-wide so the module
// map is complete, then collecting Fortran uses and C includes.
// Returns any non-fatal per-file read failures encountered.
func Extract(proj *models.Project) []error {
	var warnings []error

	for _, sf := range proj.Files {
		if sf.Kind != models.KindFortran {
			continue
		}
		lines, err := readLines(sf.Path)
		if err != nil {
			warnings = append(warnings, &ExtractError{Path: sf.Path, Err: err})
			continue
		}
		for _, line := range lines {
			if name, ok := parseModuleDefinition(line); ok {
				sf.DefinedModules = append(sf.DefinedModules, name)
				proj.ModuleIndex[name] = sf.Index
			}
		}
	}

	for _, sf := range proj.Files {
		switch sf.Kind {
		case models.KindFortran:
			lines, err := readLines(sf.Path)
			if err != nil {
				warnings = append(warnings, &ExtractError{Path: sf.Path, Err: err})
				continue
			}
			for _, line := range lines {
				name, ok := parseUseStatement(line)
				if !ok {
					continue
				}
				if depIdx, found := proj.ModuleIndex[name]; found && depIdx != sf.Index {
					addDep(sf, depIdx)
				}
			}
		case models.KindC:
			lines, err := readLines(sf.Path)
			if err != nil {
				warnings = append(warnings, &ExtractError{Path: sf.Path, Err: err})
				continue
			}
			for _, line := range lines {
				header, ok := parseQuotedInclude(line)
				if !ok {
					continue
				}
				if depIdx, found := proj.HeaderBasename[header]; found && depIdx != sf.Index {
					addDep(sf, depIdx)
				}
			}
		}
	}

	proj.BuildReverse()
	return warnings
}

func addDep(sf *models.SourceFile, depIdx int) {
	for _, existing := range sf.DependsOn {
		if existing == depIdx {
			return
		}
	}
	sf.DependsOn = append(sf.DependsOn, depIdx)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// parseModuleDefinition matches "module NAME", case-insensitively,
// rejecting "module procedure NAME" which is not a definition.
func parseModuleDefinition(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "module ") && lower != "module" {
		return "", false
	}
	rest := strings.TrimSpace(trimmed[len("module"):])
	if rest == "" {
		return "", false
	}
	token := firstIdentifier(rest)
	if token == "" {
		return "", false
	}
	if strings.EqualFold(token, "procedure") {
		return "", false
	}
	return strings.ToLower(token), true
}

// parseUseStatement matches "use NAME[, ...]" case-insensitively,
// consuming optional separators (spaces, commas, "::") before the
// module name.
func parseUseStatement(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "use") {
		return "", false
	}
	rest := trimmed[len("use"):]
	if rest != "" && !isSeparator(rune(rest[0])) {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t,:")
	token := firstIdentifier(rest)
	if token == "" {
		return "", false
	}
	return strings.ToLower(token), true
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ':'
}

// firstIdentifier returns the leading run of letters, digits, and
// underscores, stopping at the first space, comma, or any other
// character.
func firstIdentifier(s string) string {
	end := 0
	for end < len(s) {
		c := s[end]
		isIdent := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isIdent {
			break
		}
		end++
	}
	return s[:end]
}

// parseQuotedInclude matches #include "HEADER" (quoted form only);
// angle-bracket includes are not tracked.
func parseQuotedInclude(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	trimmed = strings.TrimSpace(trimmed[1:])
	if !strings.HasPrefix(trimmed, "include") {
		return "", false
	}
	rest := strings.TrimSpace(trimmed[len("include"):])
	if !strings.HasPrefix(rest, `"`) {
		return "", false
	}
	rest = rest[1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	name := rest[:end]
	if name == "" {
		return "", false
	}
	return filepath.Base(name), true
}
