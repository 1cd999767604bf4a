package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestSizeSumsAllFilesRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.bin"), 250)
	writeFile(t, filepath.Join(root, "sub", "deep", "nested", "c.bin"), 7)
	writeFile(t, filepath.Join(root, "sub", "deep", "empty.bin"), 0)

	got, err := Size(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, int64(357), got)
}

func TestSizeEmptyTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "only", "dirs"), 0o755))

	got, err := Size(context.Background(), root)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestSizeMissingPath(t *testing.T) {
	_, err := Size(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestSizeFileIsNotADirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.txt")
	writeFile(t, file, 10)

	_, err := Size(context.Background(), file)
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestSizeDoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevation on Windows")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real", "f.bin"), 64)

	// A directory symlink pointing back up the tree must be treated as a
	// leaf, not traversed, or the walk would never terminate.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "real", "loop")))

	got, err := Size(context.Background(), root)
	require.NoError(t, err)

	// 64 for the file plus the link's own Lstat size, which is small and
	// platform-dependent; it must not include a second copy of f.bin
	// beyond one traversal's worth.
	assert.GreaterOrEqual(t, got, int64(64))
	assert.Less(t, got, int64(128))
}

func TestSizeHonorsCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f.bin"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Size(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
