// Package runlock serializes cleanup runs. Two runs racing on the same
// datastore and service would double-stop the service and fight over the
// same directory trees, so each run holds a named OS mutex scoped to the
// (datastore, service) pair for its whole duration.
package runlock

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/mutex/v2"
)

const (
	acquireDelay   = 250 * time.Millisecond
	acquireTimeout = 2 * time.Second
)

// Name derives the mutex name from the (datastore, service) pair. Mutex
// names are restricted to short alphanumeric identifiers, so the pair is
// folded into a hash; case is ignored to match Windows path semantics.
func Name(datastore, service string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(datastore)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(service)))
	return fmt.Sprintf("storetrim-%08x", h.Sum32())
}

// Acquire takes the advisory lock for the pair, failing fast (after a
// short grace period) when another run already holds it. The returned
// releaser must be released on every exit path.
func Acquire(datastore, service string) (mutex.Releaser, error) {
	releaser, err := mutex.Acquire(mutex.Spec{
		Name:    Name(datastore, service),
		Clock:   clock.WallClock,
		Delay:   acquireDelay,
		Timeout: acquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("another run appears to be active for this datastore and service: %w", err)
	}
	return releaser, nil
}
