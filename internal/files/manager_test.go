package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempAndMove(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out", "report.pdf")

	tmp, err := CreateTemp(dst)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(dst), filepath.Dir(tmp))
	assert.False(t, FileExists(dst))

	require.NoError(t, os.WriteFile(tmp, []byte("content"), 0644))
	require.NoError(t, MoveFile(tmp, dst))

	assert.False(t, FileExists(tmp))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "nested", "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0644))

	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.True(t, FileExists(src))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports", "top_scorers.csv")

	require.NoError(t, WriteFileAtomic(path, []byte("a,b\n")))
	require.NoError(t, WriteFileAtomic(path, []byte("c,d\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c,d\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestEnsureDirectory(t *testing.T) {
	assert.NoError(t, EnsureDirectory(""))
	assert.NoError(t, EnsureDirectory("."))

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDirectory(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
