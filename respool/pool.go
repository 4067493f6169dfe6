// Package respool implements a reference-counted, slot-reusable resource
// pool: handles stay valid as long as at least one live reference to them
// exists, and dead slots are reclaimed on demand rather than eagerly.
//
// This is what backs GPU resource handles (textures, meshes, camera
// targets) at the engine boundary — the pool itself is render-API
// agnostic, grounded on the original's generic ArcPool.
package respool

import (
	"sync"
	"sync/atomic"
)

// handleCell is the shared allocation a [Handle] and a pool slot both
// point to. The pool's own reference doesn't count toward refs — only
// outstanding [Handle] values do, the Go stand-in for Arc strong count
// vs. a pool-held Weak.
type handleCell struct {
	index uint32
	refs  atomic.Int64
}

// Handle references a value stored in a [Pool]. It's cheap to copy;
// copying alone does not change the reference count — use [Handle.Clone]
// for that. Two handles compare equal iff they reference the same
// allocation, matching the original's Arc::ptr_eq handle equality.
type Handle[T any] struct {
	cell *handleCell
}

// Clone returns a new owned reference to the same slot, incrementing its
// strong count. Call [Handle.Release] on every clone (including the
// original) once done with it — Go has no destructor to do this
// automatically.
func (h Handle[T]) Clone() Handle[T] {
	h.cell.refs.Add(1)

	return Handle[T]{cell: h.cell}
}

// Release decrements the handle's strong count. The slot becomes
// reclaimable once the count reaches zero, though reclamation itself
// only happens during [Pool.CollectGarbage] (or implicitly, when
// [Pool.Allocate] runs out of free slots).
func (h Handle[T]) Release() {
	h.cell.refs.Add(-1)
}

// Index returns the handle's slot index, for diagnostics only. The index
// never changes for a given handle, but once every reference is released
// and the slot is collected, a later allocation may reuse the same index.
func (h Handle[T]) Index() uint32 {
	return h.cell.index
}

type poolSlot[T any] struct {
	cell  *handleCell
	value T
}

// Pool stores a set of T values behind reference-counted [Handle]s.
type Pool[T any] struct {
	mu          sync.Mutex
	freeIndices []uint32
	values      []*poolSlot[T]
	growthSize  uint32
}

// NewPool returns an empty pool that grows by growthSize slots whenever
// it's exhausted and garbage collection reclaims nothing. Panics if
// growthSize is zero.
func NewPool[T any](growthSize uint32) *Pool[T] {
	if growthSize == 0 {
		panic("respool: growth size can't be zero")
	}

	return &Pool[T]{growthSize: growthSize}
}

// Allocate stores initial in a free slot and returns a new [Handle] with
// a strong count of one. If no slot is free, it first tries
// [Pool.CollectGarbage]; only if that reclaims nothing does it grow the
// pool by growthSize slots.
func (p *Pool[T]) Allocate(initial T) Handle[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	index, ok := p.popFreeLocked()
	if !ok {
		if p.collectGarbageLocked() == 0 {
			p.growLocked()
		}

		index, ok = p.popFreeLocked()
		if !ok {
			panic("respool: pool grew but produced no free slot")
		}
	}

	cell := &handleCell{index: index}
	cell.refs.Store(1)
	p.values[index] = &poolSlot[T]{cell: cell, value: initial}

	return Handle[T]{cell: cell}
}

func (p *Pool[T]) popFreeLocked() (uint32, bool) {
	if len(p.freeIndices) == 0 {
		return 0, false
	}

	index := p.freeIndices[len(p.freeIndices)-1]
	p.freeIndices = p.freeIndices[:len(p.freeIndices)-1]

	return index, true
}

func (p *Pool[T]) growLocked() {
	low := uint32(len(p.values))

	high, overflowed := addOverflows(low, p.growthSize)
	if overflowed {
		panic("respool: pool index overflow")
	}

	p.values = append(p.values, make([]*poolSlot[T], high-low)...)

	for i := high; i > low; i-- {
		p.freeIndices = append(p.freeIndices, i-1)
	}
}

func addOverflows(a, b uint32) (uint32, bool) {
	const maxUint32 = ^uint32(0)
	if a > maxUint32-b {
		return 0, true
	}

	return a + b, false
}

// slotFor returns the live slot a handle references, panicking with the
// same diagnostics as the original if the handle is out of range or
// doesn't match the slot currently occupying its index (a handle from a
// different pool, or one whose slot has already been reclaimed and
// reused).
func (p *Pool[T]) slotFor(h Handle[T]) *poolSlot[T] {
	if int(h.cell.index) >= len(p.values) {
		panic("respool: invalid index in a live pool reference")
	}

	slot := p.values[h.cell.index]
	if slot == nil || slot.cell != h.cell {
		panic("respool: invalid dead value in a live pool reference")
	}

	return slot
}

// Get returns the value h references.
func (p *Pool[T]) Get(h Handle[T]) T {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.slotFor(h).value
}

// GetMut runs f with a pointer to the live value h references.
func (p *Pool[T]) GetMut(h Handle[T], f func(*T)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f(&p.slotFor(h).value)
}

// Set replaces h's value, returning the previous one.
func (p *Pool[T]) Set(h Handle[T], value T) T {
	p.mu.Lock()
	defer p.mu.Unlock()

	slot := p.slotFor(h)
	old := slot.value
	slot.value = value

	return old
}

// CollectGarbage reclaims every slot whose handle has a strong count of
// zero, returning how many were freed.
func (p *Pool[T]) CollectGarbage() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.collectGarbageLocked()
}

func (p *Pool[T]) collectGarbageLocked() uint32 {
	var freed uint32

	for index, slot := range p.values {
		if slot == nil {
			continue
		}

		if slot.cell.refs.Load() <= 0 {
			p.values[index] = nil
			p.freeIndices = append(p.freeIndices, uint32(index))
			freed++
		}
	}

	return freed
}

// Len returns the number of slots currently allocated (live or pending
// garbage collection), primarily for diagnostics.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.values) - len(p.freeIndices)
}
