package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidManifest(t *testing.T) {
	path := writeManifest(t, `
[build]
target = "myapp"
compiler = "gfortran"
flags = ["-O3", "-Wall"]

[search]
deep = ["src"]
`)

	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "myapp", m.Build.Target)
	require.Equal(t, "obj", m.Build.ObjDir)
	require.Equal(t, "mod", m.Build.ModDir)

	flags, ok := m.GetArray("build.flags")
	require.True(t, ok)
	require.Equal(t, []string{"-O3", "-Wall"}, flags)
}

func TestLoadMissingRequiredKeyIsFatal(t *testing.T) {
	path := writeManifest(t, `
[build]
compiler = "gfortran"
flags = ["-O3"]
`)

	_, err := Load(path)
	require.Error(t, err)
	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "build.target", missing.Key)
}

func TestLoadMalformedManifestIsFatal(t *testing.T) {
	path := writeManifest(t, "this is not [valid toml")
	_, err := Load(path)
	require.Error(t, err)
}

func TestGetStringUnknownKeyAbsent(t *testing.T) {
	path := writeManifest(t, `
[build]
target = "myapp"
compiler = "gfortran"
flags = ["-O3"]
`)
	m, err := Load(path)
	require.NoError(t, err)

	_, ok := m.GetString("nonsense.key")
	require.False(t, ok)
}
