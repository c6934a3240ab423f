package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
)

func mustID(t *testing.T, hex string) gitkit.ObjectID {
	t.Helper()
	id, err := gitkit.FromHex(hex)
	require.NoError(t, err)
	return id
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	entries := []gitkit.IndexEntry{
		{Mode: gitkit.ModeNormal, Path: "a.txt", ID: mustID(t, "ce013625030ba8dba906f756967f9e9ca394464a")},
		{Mode: gitkit.ModeExecutable, Path: "b/c.sh", ID: mustID(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904")},
	}

	require.NoError(t, Write(path, entries))
	got := Read(path)
	assert.Equal(t, entries, got)
}

func TestReadMissingFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent")
	assert.Empty(t, Read(path))
}

func TestReadCorruptHeaderReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	require.NoError(t, os.WriteFile(path, []byte("not an index"), 0o644))
	assert.Empty(t, Read(path))
}

func TestReadTruncatedEntryReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	entries := []gitkit.IndexEntry{
		{Mode: gitkit.ModeNormal, Path: "a.txt", ID: mustID(t, "ce013625030ba8dba906f756967f9e9ca394464a")},
	}
	require.NoError(t, Write(path, entries))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:len(raw)-5], 0o644))

	assert.Empty(t, Read(path))
}

func TestWriteThenReadPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index")
	entries := []gitkit.IndexEntry{
		{Mode: gitkit.ModeNormal, Path: "z.txt", ID: mustID(t, "ce013625030ba8dba906f756967f9e9ca394464a")},
		{Mode: gitkit.ModeNormal, Path: "a.txt", ID: mustID(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904")},
	}
	require.NoError(t, Write(path, entries))
	got := Read(path)
	require.Len(t, got, 2)
	assert.Equal(t, "z.txt", got[0].Path)
	assert.Equal(t, "a.txt", got[1].Path)
}
