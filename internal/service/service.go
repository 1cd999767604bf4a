// Package service queries and transitions the OS service that owns the
// datastore. Transitions are request-then-poll with a single bounded wait;
// a timeout is reported to the caller, never retried here.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"
)

// Status is the observed lifecycle state of a service.
type Status int

const (
	StatusUnknown Status = iota
	StatusRunning
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrNotFound means the service name is unrecognized by the OS.
var ErrNotFound = errors.New("service not found")

// errNotYet marks a poll that found the service short of the target state.
var errNotYet = errors.New("not yet in target state")

// driver is the platform-specific half of the controller: point-in-time
// state reads and fire-and-forget transition requests. The bounded wait
// lives in Controller so every platform shares one polling policy.
type driver interface {
	status(ctx context.Context, name string) (Status, error)
	stop(ctx context.Context, name string) error
	start(ctx context.Context, name string) error
}

const defaultPoll = 250 * time.Millisecond

// Controller drives a named OS service through stop/start transitions.
type Controller struct {
	drv   driver
	clock clock.Clock
	poll  time.Duration
}

// NewController returns the controller for the current platform.
func NewController() (*Controller, error) {
	drv, err := newDriver()
	if err != nil {
		return nil, err
	}
	return &Controller{drv: drv, clock: clock.WallClock, poll: defaultPoll}, nil
}

// Status reports the service's current state. An unrecognized name yields
// ErrNotFound.
func (c *Controller) Status(ctx context.Context, name string) (Status, error) {
	return c.drv.status(ctx, name)
}

// Stop requests a stop and waits up to timeout for the service to reach
// Stopped, polling at a fixed interval. It reports whether the target
// state was reached. An already-stopped service is a no-op reporting true.
func (c *Controller) Stop(ctx context.Context, name string, timeout time.Duration) (bool, error) {
	return c.transition(ctx, name, StatusStopped, c.drv.stop, timeout)
}

// Start is symmetric to Stop, targeting Running.
func (c *Controller) Start(ctx context.Context, name string, timeout time.Duration) (bool, error) {
	return c.transition(ctx, name, StatusRunning, c.drv.start, timeout)
}

func (c *Controller) transition(
	ctx context.Context,
	name string,
	want Status,
	request func(context.Context, string) error,
	timeout time.Duration,
) (bool, error) {
	cur, err := c.drv.status(ctx, name)
	if err != nil {
		return false, err
	}
	if cur == want {
		return true, nil
	}

	if err := request(ctx, name); err != nil {
		return false, fmt.Errorf("request %s: %w", want, err)
	}

	return c.await(ctx, name, want, timeout)
}

// await polls until the service reports the wanted state or timeout
// elapses. A timeout is not an error: the request was issued, the caller
// decides what an unconfirmed transition means.
func (c *Controller) await(ctx context.Context, name string, want Status, timeout time.Duration) (bool, error) {
	err := retry.Call(retry.CallArgs{
		Clock:       c.clock,
		Delay:       c.poll,
		MaxDuration: timeout,
		Attempts:    retry.UnlimitedAttempts,
		Stop:        ctx.Done(),
		IsFatalError: func(err error) bool {
			return !errors.Is(err, errNotYet)
		},
		Func: func() error {
			cur, err := c.drv.status(ctx, name)
			if err != nil {
				return err
			}
			if cur != want {
				return fmt.Errorf("%w: %s is %s", errNotYet, name, cur)
			}
			return nil
		},
	})

	switch {
	case err == nil:
		return true, nil
	case retry.IsDurationExceeded(err), retry.IsAttemptsExceeded(err):
		return false, nil
	case retry.IsRetryStopped(err):
		return false, ctx.Err()
	default:
		return false, err
	}
}
