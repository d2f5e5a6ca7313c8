package debounce

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"chatkeys/internal/keys"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyA = keys.KeyInput(keys.KeyA)
	keyB = keys.KeyInput(keys.KeyB)
	keyC = keys.KeyInput(keys.KeyC)
	keyD = keys.KeyInput(keys.KeyD)
)

func TestTryAcquire(t *testing.T) {
	tr := New()

	require.True(t, tr.TryAcquire([]keys.Input{keyA, keyB}))
	assert.True(t, tr.Held(keyA))
	assert.True(t, tr.Held(keyB))
	assert.Equal(t, 2, tr.Len())

	// Same action again.
	assert.False(t, tr.TryAcquire([]keys.Input{keyA, keyB}))

	// Disjoint action runs alongside.
	assert.True(t, tr.TryAcquire([]keys.Input{keyC}))

	// Partial overlap fails and leaves D untouched.
	assert.False(t, tr.TryAcquire([]keys.Input{keyD, keyB}))
	assert.False(t, tr.Held(keyD))
	assert.Equal(t, 3, tr.Len())
}

func TestSharedInputAcrossActions(t *testing.T) {
	tr := New()
	ab := []keys.Input{keyA, keyB}
	bc := []keys.Input{keyB, keyC}

	require.True(t, tr.TryAcquire(ab))
	assert.False(t, tr.TryAcquire(bc), "B is shared and still held")

	// Releasing only A is not enough.
	tr.Release(keyA)
	assert.False(t, tr.TryAcquire(bc))

	tr.Release(keyB)
	assert.True(t, tr.TryAcquire(bc))
	assert.False(t, tr.TryAcquire(ab), "B now belongs to the second action")
	assert.False(t, tr.Held(keyA), "failed acquire must not insert A")
}

func TestReleaseIsIdempotent(t *testing.T) {
	tr := New()
	tr.Release(keyA)
	assert.Equal(t, 0, tr.Len())

	require.True(t, tr.TryAcquire([]keys.Input{keyA}))
	tr.Release(keyA)
	tr.Release(keyA)
	assert.False(t, tr.Held(keyA))
	assert.True(t, tr.TryAcquire([]keys.Input{keyA}))
}

func TestEmptyAcquire(t *testing.T) {
	tr := New()
	assert.True(t, tr.TryAcquire(nil))
	assert.Equal(t, 0, tr.Len())
}

func TestSnapshot(t *testing.T) {
	tr := New()
	require.True(t, tr.TryAcquire([]keys.Input{keyA, keyC}))
	assert.ElementsMatch(t, []keys.Input{keyA, keyC}, tr.Snapshot())
}

// TestConcurrentMutualExclusion hammers the tracker with random overlapping
// input sets and checks that no input ever has two holders.
func TestConcurrentMutualExclusion(t *testing.T) {
	const (
		workers    = 16
		iterations = 2000
		universe   = 8
	)

	tr := New()
	var holders [universe]atomic.Int32
	var violations atomic.Int32
	var acquired atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < iterations; i++ {
				idx := r.Perm(universe)[:1+r.Intn(3)]
				set := make([]keys.Input, len(idx))
				for j, n := range idx {
					set[j] = keys.RawKey(uint32(n))
				}

				if !tr.TryAcquire(set) {
					continue
				}
				acquired.Add(1)
				for _, n := range idx {
					if holders[n].Add(1) != 1 {
						violations.Add(1)
					}
				}
				for _, n := range idx {
					holders[n].Add(-1)
				}
				for _, in := range set {
					tr.Release(in)
				}
			}
		}(int64(w))
	}
	wg.Wait()

	assert.Zero(t, violations.Load())
	assert.Positive(t, acquired.Load())
	assert.Zero(t, tr.Len())
}
