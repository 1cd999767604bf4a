//go:build !windows && !linux

package service

import (
	"fmt"
	"runtime"
)

func newDriver() (driver, error) {
	return nil, fmt.Errorf("service control is not supported on %s", runtime.GOOS)
}
