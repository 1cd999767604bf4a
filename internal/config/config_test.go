package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid(t *testing.T) RunConfig {
	t.Helper()
	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)
	return RunConfig{
		Datastore:    dir,
		ThresholdGB:  DefaultThresholdGB,
		LogFile:      filepath.Join(dir, "cleanup.log"),
		ServiceName:  "storesvc",
		StopTimeout:  DefaultStopTimeout,
		StartTimeout: DefaultStartTimeout,
		KeepProject:  DefaultKeepProject,
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, valid(t).Validate())
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"empty datastore", func(c *RunConfig) { c.Datastore = "" }},
		{"relative datastore", func(c *RunConfig) { c.Datastore = "data/store" }},
		{"zero threshold", func(c *RunConfig) { c.ThresholdGB = 0 }},
		{"negative threshold", func(c *RunConfig) { c.ThresholdGB = -2 }},
		{"empty log file", func(c *RunConfig) { c.LogFile = "" }},
		{"empty service", func(c *RunConfig) { c.ServiceName = "" }},
		{"zero stop timeout", func(c *RunConfig) { c.StopTimeout = 0 }},
		{"zero start timeout", func(c *RunConfig) { c.StartTimeout = 0 }},
		{"empty exclusion", func(c *RunConfig) { c.KeepProject = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid(t)
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestThresholdBytes(t *testing.T) {
	c := RunConfig{ThresholdGB: 1.5}
	assert.Equal(t, int64(1610612736), c.ThresholdBytes())

	c.ThresholdGB = 2
	assert.Equal(t, int64(2)<<30, c.ThresholdBytes())
}
