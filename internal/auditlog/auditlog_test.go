package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendFormatAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cleanup.log")

	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	stamp := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	l.now = func() time.Time { return stamp }

	require.NoError(t, l.Append("run started"))
	require.NoError(t, l.Appendf("datastore size: %d bytes", 42))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[2026-03-14 09:26:53] run started", lines[0])
	assert.Equal(t, "[2026-03-14 09:26:53] datastore size: 42 bytes", lines[1])
}

func TestNewCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "audit.log")

	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append("first"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// Each line must stay parseable by simple splitting: a closing bracket
// ends the timestamp, everything after the space is the message.
func TestLineRemainsLineParseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	l, err := New(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append("deleted [weird] names: 3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimRight(string(data), "\n")
	assert.True(t, strings.HasPrefix(line, "["))
	ts, msg, found := strings.Cut(line[1:], "] ")
	require.True(t, found)
	_, err = time.ParseInLocation("2006-01-02 15:04:05", ts, time.Local)
	assert.NoError(t, err)
	assert.Equal(t, "deleted [weird] names: 3", msg)
}
