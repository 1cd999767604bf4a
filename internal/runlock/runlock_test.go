package runlock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameIsStableAndScoped(t *testing.T) {
	a := Name(`D:\Store`, "storesvc")
	b := Name(`D:\Store`, "storesvc")
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, Name(`D:\Other`, "storesvc"))
	assert.NotEqual(t, a, Name(`D:\Store`, "othersvc"))
}

func TestNameIgnoresCase(t *testing.T) {
	assert.Equal(t, Name(`d:\store`, "STORESVC"), Name(`D:\Store`, "storesvc"))
}

func TestNameIsAValidMutexName(t *testing.T) {
	n := Name(`D:\Very Long Datastore Path\With Spaces\and-dashes`, "Some Service Name")
	assert.True(t, strings.HasPrefix(n, "storetrim-"))
	assert.LessOrEqual(t, len(n), 40)
	for _, r := range n {
		valid := r == '-' ||
			(r >= 'a' && r <= 'z') ||
			(r >= '0' && r <= '9')
		assert.True(t, valid, "unexpected rune %q in %s", r, n)
	}
}

func TestAcquireExcludesSecondHolder(t *testing.T) {
	store := t.TempDir()

	r1, err := Acquire(store, "storesvc")
	require.NoError(t, err)
	defer r1.Release()

	// Same pair: the second run must fail fast, not race.
	_, err = Acquire(store, "storesvc")
	assert.Error(t, err)

	// Different pair: independent lock.
	r2, err := Acquire(store, "othersvc")
	require.NoError(t, err)
	r2.Release()
}
