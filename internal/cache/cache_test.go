package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fortuna-build/fortuna/internal/models"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	dir := t.TempDir()
	table := models.PrevHashTable{
		"/proj/a.f90": 123,
		"/proj/b.f90": 456,
	}
	require.NoError(t, SaveHashes(dir, table))

	loaded, err := LoadHashes(dir)
	require.NoError(t, err)
	require.Equal(t, table, loaded)
}

func TestLoadHashesMissingFileIsEmptyNotError(t *testing.T) {
	table, err := LoadHashes(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, table)
}

func TestLoadHashesSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	raw := "/proj/a.f90 123\nbroken line\n/proj/b.f90 not-a-number\n/proj/c.f90 789\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, HashFileName), []byte(raw), 0644))

	table, err := LoadHashes(dir)
	require.NoError(t, err)
	require.Equal(t, models.PrevHashTable{
		"/proj/a.f90": 123,
		"/proj/c.f90": 789,
	}, table)
}

func TestPruneObsoleteRemovesDeletedPaths(t *testing.T) {
	proj := models.NewProject()
	proj.Add("/proj/a.f90", models.KindFortran)

	table := models.PrevHashTable{
		"/proj/a.f90": 1,
		"/proj/gone.f90": 2,
	}
	PruneObsolete(table, proj)

	require.Equal(t, models.PrevHashTable{"/proj/a.f90": 1}, table)
}

func TestDependencyLinesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lines := []models.DependencyLine{
		{Target: "/proj/a.f90", Deps: nil},
		{Target: "/proj/b.f90", Deps: []string{"/proj/a.f90"}},
	}
	require.NoError(t, SaveDependencyLines(dir, lines))

	loaded, err := LoadDependencyLines(dir)
	require.NoError(t, err)
	require.Equal(t, lines, loaded)
}

func TestBuildDependencyLinesFromGraph(t *testing.T) {
	proj := models.NewProject()
	a := proj.Add("/proj/a.f90", models.KindFortran)
	b := proj.Add("/proj/b.f90", models.KindFortran)
	proj.Files[b].DependsOn = []int{a}

	lines := BuildDependencyLines(proj, []int{a, b})
	require.Equal(t, []models.DependencyLine{
		{Target: "/proj/a.f90", Deps: []string{}},
		{Target: "/proj/b.f90", Deps: []string{"/proj/a.f90"}},
	}, lines)
}
