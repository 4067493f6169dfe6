// Package bus implements the per-frame message bus: a type-keyed,
// multi-producer queue whose contents only become visible to readers one
// frame after they were sent.
package bus

import (
	"reflect"
	"sync"
)

// Bus holds two generations of messages per type: the one producers are
// currently writing into ("current"), and the one readers iterate this
// frame ("visible"). [Bus.AdvanceGeneration] swaps them — messages sent
// during frame K only become visible during frame K+1.
//
// current is guarded by a mutex since producers may call [Send] from any
// system, on any goroutine, during any stage. visible is swapped in
// wholesale by AdvanceGeneration and is never mutated by readers; it has
// its own RWMutex, which [Iter] holds shared while copying, so concurrent
// readers do not block each other or producers.
type Bus struct {
	mu      sync.Mutex
	current map[reflect.Type][]any

	visibleMu sync.RWMutex
	visible   map[reflect.Type][]any
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{
		current: make(map[reflect.Type][]any),
		visible: make(map[reflect.Type][]any),
	}
}

// Send enqueues a message of type T for delivery starting next frame.
func Send[T any](b *Bus, msg T) {
	t := reflect.TypeFor[T]()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current[t] = append(b.current[t], msg)
}

// SendAll enqueues every message in msgs, in order, as a single batch —
// the translation of the original's send_messages taking an iterator.
func SendAll[T any](b *Bus, msgs []T) {
	if len(msgs) == 0 {
		return
	}

	t := reflect.TypeFor[T]()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, msg := range msgs {
		b.current[t] = append(b.current[t], msg)
	}
}

// SendDynamic enqueues msg keyed by its own runtime type, for callers
// that only have an any (e.g. forwarding a batch of heterogeneous window
// events, each boxed under its own concrete type as the original does).
func (b *Bus) SendDynamic(msg any) {
	t := reflect.TypeOf(msg)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current[t] = append(b.current[t], msg)
}

// Iter returns every message of type T visible this frame — i.e. sent
// during the previous frame, before the last [Bus.AdvanceGeneration].
func Iter[T any](b *Bus) []T {
	t := reflect.TypeFor[T]()

	b.visibleMu.RLock()
	defer b.visibleMu.RUnlock()

	raw := b.visible[t]
	if len(raw) == 0 {
		return nil
	}

	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = v.(T)
	}

	return out
}

// AdvanceGeneration swaps the visible and current generations: messages
// sent since the last call become visible, and current starts empty for
// the next frame's producers. Scheduler-only — calling this from a
// system would violate the single-generation-visibility guarantee.
func (b *Bus) AdvanceGeneration() {
	b.mu.Lock()
	next := b.current
	b.current = make(map[reflect.Type][]any)
	b.mu.Unlock()

	b.visibleMu.Lock()
	b.visible = next
	b.visibleMu.Unlock()
}
