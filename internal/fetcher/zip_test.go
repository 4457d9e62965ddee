package fetcher

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zipMember struct {
	name    string
	content string
}

func createTestZIP(t *testing.T, members ...zipMember) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "wells.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	w := zip.NewWriter(f)
	for _, m := range members {
		fw, err := w.Create(m.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(m.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return zipPath
}

func TestExtractDataset_FirstTabularMember(t *testing.T) {
	zipPath := createTestZIP(t,
		zipMember{"README.md", "docs"},
		zipMember{"data/EF_data.csv", "Name\nW-1\n"},
		zipMember{"data/other.csv", "Name\nW-2\n"},
	)

	dest := t.TempDir()
	path, err := ExtractDataset(zipPath, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "data", "EF_data.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name\nW-1\n", string(data))
}

func TestExtractDataset_NoTabularMember(t *testing.T) {
	zipPath := createTestZIP(t, zipMember{"notes.md", "nothing"})

	_, err := ExtractDataset(zipPath, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no csv or xlsx member")
}

func TestExtractDataset_ZipSlip(t *testing.T) {
	zipPath := createTestZIP(t, zipMember{"../../evil.csv", "x"})

	_, err := ExtractDataset(zipPath, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zip slip")
}

func TestExtractDataset_BadArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ExtractDataset(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zip: open archive")
}
