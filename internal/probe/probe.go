// Package probe measures the on-disk size of a directory tree.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathNotFound is returned when the probed path does not exist or is
// not a directory.
var ErrPathNotFound = errors.New("path not found")

// Size returns the sum, in bytes, of the logical sizes of all files
// reachable by recursive descent under root. Symlinks and junction/reparse
// points are treated as leaves and never traversed, so cyclic links cannot
// cause infinite recursion. An empty tree yields 0.
//
// The walk is strictly sequential and checks ctx between directory reads,
// so a cancelled context stops a probe of an arbitrarily large tree.
func Size(ctx context.Context, root string) (int64, error) {
	root = filepath.Clean(root)

	info, err := os.Lstat(longPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return 0, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, root)
	}

	return sizeDir(ctx, root)
}

func sizeDir(ctx context.Context, dir string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(longPath(dir))
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", dir, err)
	}

	var total int64
	for _, e := range entries {
		child := filepath.Join(dir, e.Name())

		// DirEntry types come from Lstat semantics: a symlink to a
		// directory reports as a symlink, not a directory, and is
		// therefore counted as a leaf below rather than recursed.
		if e.IsDir() {
			n, err := sizeDir(ctx, child)
			if err != nil {
				return 0, err
			}
			total += n
			continue
		}

		info, err := e.Info()
		if err != nil {
			// The owning service can race us on short-lived files;
			// a vanished entry is not a measurement failure.
			if os.IsNotExist(err) {
				continue
			}
			return 0, fmt.Errorf("stat %s: %w", child, err)
		}
		total += info.Size()
	}

	return total, nil
}
