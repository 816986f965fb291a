package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fortuna-build/fortuna/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesExpectedLayout(t *testing.T) {
	root := t.TempDir()
	projDir := filepath.Join(root, "myapp")

	require.NoError(t, New(projDir))

	for _, d := range append(append([]string{}, dirs...), hiddenDirs...) {
		info, err := os.Stat(filepath.Join(projDir, d))
		require.NoError(t, err, "expected directory %s", d)
		require.True(t, info.IsDir())
	}

	manifestPath := filepath.Join(projDir, config.ManifestFileName)
	require.FileExists(t, manifestPath)

	m, err := config.Load(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "bin/"+projDir, m.Build.Target)
	require.Equal(t, "gfortran", m.Build.Compiler)

	mainPath := filepath.Join(projDir, "src", "main.f90")
	data, err := os.ReadFile(mainPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "Hello World")
}
