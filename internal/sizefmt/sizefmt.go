// Package sizefmt renders byte counts for the audit log and console output.
package sizefmt

import "fmt"

const (
	// KB, MB, and GB are binary (1024-based) unit boundaries.
	KB int64 = 1 << 10
	MB int64 = 1 << 20
	GB int64 = 1 << 30
)

// Format returns a human-readable size using truncating division and the
// largest unit whose value is still >= 1. A count sitting exactly on a unit
// boundary classifies into the higher unit: 1048576 bytes is "1 MB", never
// "1024 KB". Counts below 1 KB are reported in bytes.
func Format(n int64) string {
	switch {
	case n >= GB:
		return fmt.Sprintf("%d GB", n/GB)
	case n >= MB:
		return fmt.Sprintf("%d MB", n/MB)
	case n >= KB:
		return fmt.Sprintf("%d KB", n/KB)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
