// Package config holds the validated, immutable configuration of one
// cleanup run. No package-level state: a RunConfig value is built once by
// the CLI layer and handed to the orchestrator.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Defaults for the flag surface.
const (
	DefaultThresholdGB  = 1.5
	DefaultStopTimeout  = 30 * time.Second
	DefaultStartTimeout = 30 * time.Second
	DefaultKeepProject  = "Default"
)

// RunConfig is the full configuration of a single cleanup run. It is
// immutable for the run's duration.
type RunConfig struct {
	// Datastore is the absolute path of the monitored directory.
	Datastore string

	// ThresholdGB is the trigger threshold in decimal gigabytes;
	// the cleanup branch runs only when the measured size exceeds
	// ThresholdBytes().
	ThresholdGB float64

	// LogFile is the audit log destination.
	LogFile string

	// ServiceName identifies the OS service that owns the datastore.
	ServiceName string

	// StopTimeout and StartTimeout bound the wait for the service to
	// reach the requested state. A timeout is reported, not retried.
	StopTimeout  time.Duration
	StartTimeout time.Duration

	// KeepProject is the one immediate child of the Projects directory
	// that the cleanup must never delete.
	KeepProject string

	// DryRun previews deletions without performing them.
	DryRun bool
}

// ThresholdBytes converts the decimal-GB threshold to bytes (GB x 2^30).
func (c RunConfig) ThresholdBytes() int64 {
	return int64(c.ThresholdGB * float64(int64(1)<<30))
}

// Validate rejects configurations the orchestrator must never see.
func (c RunConfig) Validate() error {
	if c.Datastore == "" {
		return errors.New("datastore path is required")
	}
	if !filepath.IsAbs(c.Datastore) {
		return fmt.Errorf("datastore path must be absolute, got %q", c.Datastore)
	}
	if c.ThresholdGB <= 0 {
		return fmt.Errorf("threshold must be positive, got %g GB", c.ThresholdGB)
	}
	if c.LogFile == "" {
		return errors.New("log file path is required")
	}
	if c.ServiceName == "" {
		return errors.New("service name is required")
	}
	if c.StopTimeout <= 0 || c.StartTimeout <= 0 {
		return errors.New("service transition timeouts must be positive")
	}
	if c.KeepProject == "" {
		return errors.New("a project exclusion name is required")
	}
	return nil
}
