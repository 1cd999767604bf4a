//go:build windows

package probe

import (
	"path/filepath"
	"strings"
)

// longPath adds the \\?\ prefix for paths exceeding MAX_PATH on Windows.
func longPath(path string) string {
	if len(path) >= 260 && !strings.HasPrefix(path, `\\?\`) {
		return `\\?\` + filepath.Clean(path)
	}
	return path
}
