package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/invoicer/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewRoundTripsThroughTime(t *testing.T) {
	t.Parallel()

	id := idx.New()
	require.False(t, id.IsZero())
	require.Len(t, id.String(), 26)
	require.WithinDuration(t, time.Now(), id.Time(), time.Second)
}

func TestOrderingFollowsTime(t *testing.T) {
	t.Parallel()

	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())
	require.Less(t, a.String(), b.String())
}

func TestTimeExtraction(t *testing.T) {
	t.Parallel()

	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)
	require.WithinDuration(t, tm, id.Time(), time.Millisecond)

	require.True(t, idx.Zero.Time().IsZero())
}

func TestConcurrentUnique(t *testing.T) {
	t.Parallel()

	const n = 200
	var (
		mu   sync.Mutex
		seen = make(map[idx.ID]struct{}, n)
		wg   sync.WaitGroup
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := idx.New()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	require.Len(t, seen, n)
}
