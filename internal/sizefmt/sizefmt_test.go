package sizefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		n    int64
		want string
	}{
		{"zero", 0, "0 bytes"},
		{"small", 512, "512 bytes"},
		{"just under 1KB", 1023, "1023 bytes"},
		{"exactly 1KB", 1024, "1 KB"},
		{"just over 1KB", 1025, "1 KB"},
		{"truncates, never rounds up", 2047, "1 KB"},
		{"just under 1MB", 1<<20 - 1, "1023 KB"},
		{"exactly 1MB classifies higher", 1 << 20, "1 MB"},
		{"just over 1MB", 1<<20 + 1, "1 MB"},
		{"just under 1GB", 1<<30 - 1, "1023 MB"},
		{"exactly 1GB classifies higher", 1 << 30, "1 GB"},
		{"two GB", 2 << 30, "2 GB"},
		{"large", 1536 << 30, "1536 GB"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Format(tc.n))
		})
	}
}

// Format must be monotonic: a larger byte count never produces a unit
// below a smaller count's unit.
func TestFormatMonotonicAcrossBoundaries(t *testing.T) {
	boundaries := []int64{KB, MB, GB}
	for _, b := range boundaries {
		below := Format(b - 1)
		at := Format(b)
		assert.NotEqual(t, below, at, "boundary %d must switch units", b)
	}
}
