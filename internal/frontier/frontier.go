// Package frontier implements the shared, deduplicated URL work queue
// that feeds the crawler's worker pool.
package frontier

import (
	"sync"

	"github.com/alvmarrod/pagerank-crawler/internal/urlnorm"
)

// Frontier is a thread-safe, deduplicated FIFO queue of URLs.
//
// A single mutex guards both the pending sequence and the dedup set so
// that "in the dedup set" and "in the pending sequence" never diverge
// (splitting the two into separate lock-free structures would open a
// window violating that invariant).
type Frontier struct {
	mu      sync.Mutex
	pending []string
	dedup   map[string]struct{}
	done    bool
}

// New returns a Frontier with empty state. Callers must call Init
// exactly once before any worker starts.
func New() *Frontier {
	return &Frontier{
		dedup: make(map[string]struct{}),
	}
}

// Init empties internal state and seeds it with seed. Must be called
// exactly once before any worker starts.
func (f *Frontier) Init(seed string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pending = f.pending[:0]
	f.dedup = make(map[string]struct{})
	f.done = false

	f.pending = append(f.pending, seed)
	f.dedup[seed] = struct{}{}
}

// TryDequeue removes and returns the head of the pending sequence.
// The second return value is false if the frontier is currently empty.
func (f *Frontier) TryDequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pending) == 0 {
		return "", false
	}

	url := f.pending[0]
	f.pending = f.pending[1:]
	return url, true
}

// AddIfNotVisited rejects url if it is empty, too long, or already in
// the dedup set; otherwise it inserts url into both the dedup set and
// the pending sequence and returns true.
func (f *Frontier) AddIfNotVisited(url string) bool {
	if !urlnorm.Valid(url) {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, seen := f.dedup[url]; seen {
		return false
	}

	f.dedup[url] = struct{}{}
	f.pending = append(f.pending, url)
	return true
}

// BatchEnqueue applies AddIfNotVisited to each URL in urls and returns
// the count of URLs newly added. Atomicity is per-URL, not per-batch.
func (f *Frontier) BatchEnqueue(urls []string) int {
	added := 0
	for _, u := range urls {
		if f.AddIfNotVisited(u) {
			added++
		}
	}
	return added
}

// QueueSize returns the number of URLs currently pending.
func (f *Frontier) QueueSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// VisitedCount returns the total number of URLs ever accepted into the
// dedup set, including the seed.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.dedup)
}

// MarkDone flags the frontier as done. Observability only; it has no
// effect on TryDequeue/AddIfNotVisited behavior.
func (f *Frontier) MarkDone() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done = true
}

// IsDone reports the value last set by MarkDone.
func (f *Frontier) IsDone() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}
