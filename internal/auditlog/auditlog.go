// Package auditlog is the append-only audit trail of a cleanup run.
//
// Every orchestrator decision ends up here; the log file is the sole
// durable record of what a run did, so a write failure is treated as
// fatal by the caller rather than something to shrug off.
package auditlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// timestampLayout matches the line format consumed by the build system's
// log archiver: "[YYYY-MM-DD HH:MM:SS] <message>".
const timestampLayout = "2006-01-02 15:04:05"

// Logger appends timestamped lines to a single audit file. Lines are
// written in call order; the file rotates via lumberjack so scheduled
// runs cannot grow it without bound.
type Logger struct {
	sink *lumberjack.Logger
	now  func() time.Time
}

// New opens (creating if absent) the audit log at path.
func New(path string) (*Logger, error) {
	// lumberjack creates the file lazily on first write but not the
	// directory above it.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	return &Logger{
		sink: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
		},
		now: time.Now,
	}, nil
}

// Append writes one timestamped line. The returned error means the audit
// trail is broken and the run must halt.
func (l *Logger) Append(message string) error {
	line := fmt.Sprintf("[%s] %s\n", l.now().Format(timestampLayout), message)
	if _, err := l.sink.Write([]byte(line)); err != nil {
		return fmt.Errorf("append to audit log: %w", err)
	}
	return nil
}

// Appendf formats and appends one line.
func (l *Logger) Appendf(format string, args ...any) error {
	return l.Append(fmt.Sprintf(format, args...))
}

// Close releases the log file handle.
func (l *Logger) Close() error {
	return l.sink.Close()
}
