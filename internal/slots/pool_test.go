package slots

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAcquireUntilFull(t *testing.T) {
	p := New(3)
	var hs []*Handle
	for i := 0; i < 3; i++ {
		h, err := p.TryAcquire()
		require.NoError(t, err)
		assert.Equal(t, i, h.Slot())
		assert.NotEmpty(t, h.Task())
		hs = append(hs, h)
	}
	assert.Equal(t, 3, p.Busy())

	_, err := p.TryAcquire()
	assert.ErrorIs(t, err, ErrFull)

	hs[1].Release()
	assert.Equal(t, 2, p.Busy())

	h, err := p.TryAcquire()
	require.NoError(t, err)
	assert.Equal(t, 1, h.Slot())
	assert.NotEqual(t, hs[1].Task(), h.Task())
}

func TestReleaseIsIdempotent(t *testing.T) {
	p := New(2)
	a, err := p.TryAcquire()
	require.NoError(t, err)
	a.Release()
	a.Release()
	assert.Equal(t, 0, p.Busy())

	// The slot was reused; the stale handle must not free it.
	b, err := p.TryAcquire()
	require.NoError(t, err)
	require.Equal(t, a.Slot(), b.Slot())
	a.Release()
	assert.Equal(t, 1, p.Busy())
	assert.Len(t, p.Snapshot(), 1)
	assert.Equal(t, b.Task(), p.Snapshot()[0].Task)
}

func TestNewClampsCapacity(t *testing.T) {
	assert.Equal(t, 1, New(0).Cap())
	assert.Equal(t, 8, New(8).Cap())
}

func TestConcurrentAcquireNeverExceedsCapacity(t *testing.T) {
	const capacity = 4
	p := New(capacity)

	var inFlight, peak, rejected int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := p.TryAcquire()
			if err != nil {
				atomic.AddInt64(&rejected, 1)
				return
			}
			defer h.Release()
			n := atomic.AddInt64(&inFlight, 1)
			for {
				old := atomic.LoadInt64(&peak)
				if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
					break
				}
			}
			assert.LessOrEqual(t, p.Busy(), capacity)
			atomic.AddInt64(&inFlight, -1)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak, int64(capacity))
	assert.Equal(t, 0, p.Busy())
}
