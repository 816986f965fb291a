package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fortuna-build/fortuna/internal/models"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("! test\n"), 0644))
}

func TestScanClassifiesByStrictSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.f90"))
	writeFile(t, filepath.Join(dir, "src", "B.FOR"))
	writeFile(t, filepath.Join(dir, "src", "main.c"))
	writeFile(t, filepath.Join(dir, "src", "util.h"))
	writeFile(t, filepath.Join(dir, "src", "file.fast")) // must NOT be treated as Fortran
	writeFile(t, filepath.Join(dir, "src", "readme.txt"))

	proj, warnings, err := Scan([]string{filepath.Join(dir, "src")}, nil)
	require.NoError(t, err)
	require.Empty(t, warnings)

	require.Len(t, proj.Files, 4)

	kinds := map[string]models.Kind{}
	for _, f := range proj.Files {
		kinds[filepath.Base(f.Path)] = f.Kind
	}
	require.Equal(t, models.KindFortran, kinds["a.f90"])
	require.Equal(t, models.KindFortran, kinds["B.FOR"])
	require.Equal(t, models.KindC, kinds["main.c"])
	require.Equal(t, models.KindHeader, kinds["util.h"])
	_, hasFast := kinds["file.fast"]
	require.False(t, hasFast, "file.fast must not be classified by substring match")
}

func TestScanDeepAndShallowOrdering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.f90"))
	writeFile(t, filepath.Join(dir, "nested", "sub.f90"))

	proj, _, err := Scan([]string{dir}, []string{dir})
	require.NoError(t, err)

	// Shallow-only scan of dir sees only top.f90; deep scan adds
	// nested/sub.f90 afterward and does not duplicate top.f90.
	names := make([]string, 0, len(proj.Files))
	for _, f := range proj.Files {
		names = append(names, filepath.Base(f.Path))
	}
	require.Contains(t, names, "top.f90")
	require.Contains(t, names, "sub.f90")
	require.Len(t, proj.Files, 2)
	require.Equal(t, []string{"top.f90", "sub.f90"}, names)
}

func TestScanUnreadableRootIsFatal(t *testing.T) {
	_, _, err := Scan([]string{filepath.Join(t.TempDir(), "does-not-exist")}, nil)
	require.Error(t, err)
	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
}

func TestScanShallowDoesNotDescend(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.f90"))
	writeFile(t, filepath.Join(dir, "nested", "sub.f90"))

	proj, _, err := Scan(nil, []string{dir})
	require.NoError(t, err)
	require.Len(t, proj.Files, 1)
	require.Equal(t, "top.f90", filepath.Base(proj.Files[0].Path))
}
