//go:build windows

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// Win32_Service mirrors the WMI class of the same name; the struct name
// doubles as the query's table name.
type Win32_Service struct {
	Name  string
	State string
}

// windowsDriver reads service state through WMI (works without elevation)
// and issues transitions through the service control manager.
type windowsDriver struct{}

func newDriver() (driver, error) {
	return windowsDriver{}, nil
}

func (windowsDriver) status(_ context.Context, name string) (Status, error) {
	var dst []Win32_Service
	where := fmt.Sprintf("WHERE Name = '%s'", strings.ReplaceAll(name, "'", "''"))
	if err := wmi.Query(wmi.CreateQuery(&dst, where), &dst); err != nil {
		return StatusUnknown, fmt.Errorf("query service %s: %w", name, err)
	}
	if len(dst) == 0 {
		return StatusUnknown, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	switch dst[0].State {
	case "Running":
		return StatusRunning, nil
	case "Stopped":
		return StatusStopped, nil
	default:
		// Start Pending, Stop Pending, Paused, ... — the poll loop will
		// observe the settled state on a later pass.
		return StatusUnknown, nil
	}
}

func (windowsDriver) stop(_ context.Context, name string) error {
	return withService(name, func(s *mgr.Service) error {
		_, err := s.Control(svc.Stop)
		return err
	})
}

func (windowsDriver) start(_ context.Context, name string) error {
	return withService(name, func(s *mgr.Service) error {
		return s.Start()
	})
}

func withService(name string, op func(*mgr.Service) error) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	defer s.Close()

	return op(s)
}
