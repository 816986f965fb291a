package hasher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintStableAndSensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.f90")
	require.NoError(t, os.WriteFile(path, []byte("module alpha\nend module alpha\n"), 0644))

	fp1, err := Fingerprint(path)
	require.NoError(t, err)

	fp2, err := Fingerprint(path)
	require.NoError(t, err)
	require.Equal(t, fp1, fp2, "hashing the same content twice must agree")

	require.NoError(t, os.WriteFile(path, []byte("module alpha\nprint *, 1\nend module alpha\n"), 0644))
	fp3, err := Fingerprint(path)
	require.NoError(t, err)
	require.NotEqual(t, fp1, fp3, "changed content must change the fingerprint")
}

func TestFingerprintMissingFileIsSentinelZero(t *testing.T) {
	fp, err := Fingerprint(filepath.Join(t.TempDir(), "nope.f90"))
	require.NoError(t, err)
	require.Equal(t, uint32(0), uint32(fp))
}

func TestFingerprintChunkBoundary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.c")
	data := make([]byte, chunkSize*3+17)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(path, data, 0644))

	fp, err := Fingerprint(path)
	require.NoError(t, err)
	require.NotZero(t, fp)
}
