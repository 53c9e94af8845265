package frontier

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSeedsDedupAndPending(t *testing.T) {
	f := New()
	f.Init("http://a.test/")

	require.Equal(t, 1, f.QueueSize())
	require.Equal(t, 1, f.VisitedCount())
}

func TestAddIfNotVisitedRejectsDuplicates(t *testing.T) {
	f := New()
	f.Init("http://a.test/")

	require.False(t, f.AddIfNotVisited("http://a.test/"))
	require.True(t, f.AddIfNotVisited("http://b.test/"))
	require.False(t, f.AddIfNotVisited("http://b.test/"))
}

func TestAddIfNotVisitedRejectsInvalidURLs(t *testing.T) {
	f := New()
	f.Init("http://a.test/")

	require.False(t, f.AddIfNotVisited(""))
	require.False(t, f.AddIfNotVisited("ftp://a.test/"))

	oversized := "http://a.test/" + string(make([]byte, 10000))
	require.False(t, f.AddIfNotVisited(oversized))
}

func TestBatchEnqueueReturnsNewlyAddedCount(t *testing.T) {
	f := New()
	f.Init("http://a.test/")

	urls := []string{"http://b.test/", "http://b.test/", "http://c.test/", "http://a.test/"}
	added := f.BatchEnqueue(urls)

	require.Equal(t, 2, added)
	require.Equal(t, 3, f.VisitedCount())
}

func TestTryDequeueIsFIFOAndAtMostOnce(t *testing.T) {
	f := New()
	f.Init("http://a.test/")
	f.BatchEnqueue([]string{"http://b.test/", "http://c.test/"})

	seen := make(map[string]int)
	var order []string
	for {
		u, ok := f.TryDequeue()
		if !ok {
			break
		}
		seen[u]++
		order = append(order, u)
	}

	require.Equal(t, []string{"http://a.test/", "http://b.test/", "http://c.test/"}, order)
	require.Equal(t, 1, seen["http://a.test/"])
	require.Equal(t, 1, seen["http://b.test/"])
	require.Equal(t, 1, seen["http://c.test/"])
}

func TestConcurrentDedupInvariant(t *testing.T) {
	f := New()
	f.Init("http://seed.test/")

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	var addedCount int64Counter
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				url := "http://dup.test/" + strconv.Itoa(i)
				if f.AddIfNotVisited(url) {
					addedCount.add(1)
				}
			}
		}(w)
	}
	wg.Wait()

	// Each of the perWorker distinct URLs should be accepted exactly
	// once across all workers.
	require.Equal(t, int64(perWorker), addedCount.get())
	require.Equal(t, 1+perWorker, f.VisitedCount())
}

// int64Counter is a tiny mutex-guarded counter used only by the test
// above to avoid pulling in sync/atomic for a single assertion.
type int64Counter struct {
	mu sync.Mutex
	n  int64
}

func (c *int64Counter) add(delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n += delta
}

func (c *int64Counter) get() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
