//go:build linux

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
)

// systemdDriver talks to systemd over D-Bus. Transition requests pass a
// nil result channel: the controller's poll loop observes the outcome, so
// there is no second wait to coordinate.
type systemdDriver struct{}

func newDriver() (driver, error) {
	return systemdDriver{}, nil
}

// unitName normalizes a service name to its systemd unit name.
func unitName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".service"
}

func (systemdDriver) status(ctx context.Context, name string) (Status, error) {
	conn, err := dbus.NewWithContext(ctx)
	if err != nil {
		return StatusUnknown, fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	unit := unitName(name)
	units, err := conn.ListUnitsByNamesContext(ctx, []string{unit})
	if err != nil {
		return StatusUnknown, fmt.Errorf("query unit %s: %w", unit, err)
	}
	if len(units) == 0 || units[0].LoadState == "not-found" {
		return StatusUnknown, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	switch units[0].ActiveState {
	case "active":
		return StatusRunning, nil
	case "inactive", "failed":
		return StatusStopped, nil
	default:
		// activating / deactivating settle on a later poll.
		return StatusUnknown, nil
	}
}

func (systemdDriver) stop(ctx context.Context, name string) error {
	conn, err := dbus.NewWithContext(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	_, err = conn.StopUnitContext(ctx, unitName(name), "replace", nil)
	return err
}

func (systemdDriver) start(ctx context.Context, name string) error {
	conn, err := dbus.NewWithContext(ctx)
	if err != nil {
		return fmt.Errorf("connect to systemd: %w", err)
	}
	defer conn.Close()

	_, err = conn.StartUnitContext(ctx, unitName(name), "replace", nil)
	return err
}
