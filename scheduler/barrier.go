package scheduler

import "sync"

// cyclicBarrier is a reusable rendezvous point for a fixed number of
// goroutines, the Go stand-in for Rust's std::sync::Barrier (which Go's
// standard library has no equivalent of). Every call to [cyclicBarrier.Wait]
// blocks until exactly n goroutines have called it, then releases all of
// them and resets for the next cycle.
//
// Sized once at construction and never resized afterward — the scheduler
// fixes its thread count before the frame loop starts.
type cyclicBarrier struct {
	mu         sync.Mutex
	cond       *sync.Cond
	n          int
	count      int
	generation uint64
}

// newCyclicBarrier returns a barrier that releases every n goroutines
// once all n have called Wait.
func newCyclicBarrier(n int) *cyclicBarrier {
	b := &cyclicBarrier{n: n}
	b.cond = sync.NewCond(&b.mu)

	return b
}

// Wait blocks the calling goroutine until n-1 others have also called
// Wait in the same generation, then releases all of them together.
func (b *cyclicBarrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.count++

	if b.count == b.n {
		b.count = 0
		b.generation++
		b.cond.Broadcast()

		return
	}

	for gen == b.generation {
		b.cond.Wait()
	}
}
