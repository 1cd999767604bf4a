//go:build !windows

package probe

// longPath is a no-op outside Windows; only NT imposes the MAX_PATH limit
// that the \\?\ prefix works around.
func longPath(path string) string {
	return path
}
