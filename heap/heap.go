// Package heap implements the dense, atomically-backed array of node-pair
// slots that every wire and agent in the net lives in (spec.md §3.2).
package heap

import (
	"errors"
	"sync/atomic"

	"redex/ptr"
)

// ErrExhausted is returned by Alloc when no free slot remains after a
// full probe of the heap (spec.md §7: reduction must fail deterministically
// rather than silently overwrite).
var ErrExhausted = errors.New("heap: exhausted")

// node is a single heap slot: an ordered pair of pointers, each
// independently atomically readable/writable. Relaxed ordering is
// sufficient for the sequential driver (spec.md §3.2, §5); atomic.Uint32
// keeps the layout ready for a future parallel driver without changing it.
type node struct {
	p1 atomic.Uint32
	p2 atomic.Uint32
}

// Heap is the fixed-capacity array of node slots the net reduces over.
// Slot 0 is reserved to hold the root wire (spec.md §3.2, I4) and is
// never handed out by Alloc.
type Heap struct {
	nodes     []node
	next      uint32
	exhausted bool
}

// New allocates a heap of size slots, all initially free.
func New(size uint32) *Heap {
	if size == 0 {
		size = 1
	}
	return &Heap{nodes: make([]node, size), next: 1}
}

// Len returns the heap's total slot capacity.
func (h *Heap) Len() uint32 {
	return uint32(len(h.nodes))
}

// Get reads the pointer stored at (loc, port). port must be 0 or 1.
func (h *Heap) Get(loc uint32, port uint8) ptr.Ptr {
	if port == 0 {
		return ptr.Ptr(h.nodes[loc].p1.Load())
	}
	return ptr.Ptr(h.nodes[loc].p2.Load())
}

// Set writes p into (loc, port). port must be 0 or 1.
func (h *Heap) Set(loc uint32, port uint8, p ptr.Ptr) {
	if port == 0 {
		h.nodes[loc].p1.Store(uint32(p))
	} else {
		h.nodes[loc].p2.Store(uint32(p))
	}
}

// GetP1 reads the slot's first port; a convenience over Get(loc, 0).
func (h *Heap) GetP1(loc uint32) ptr.Ptr { return h.Get(loc, 0) }

// GetP2 reads the slot's second port; a convenience over Get(loc, 1).
func (h *Heap) GetP2(loc uint32) ptr.Ptr { return h.Get(loc, 1) }

// SetP1 writes the slot's first port; a convenience over Set(loc, 0, p).
func (h *Heap) SetP1(loc uint32, p ptr.Ptr) { h.Set(loc, 0, p) }

// SetP2 writes the slot's second port; a convenience over Set(loc, 1, p).
func (h *Heap) SetP2(loc uint32, p ptr.Ptr) { h.Set(loc, 1, p) }

// IsFree reports whether loc holds no live node. spec.md §3.2 literally
// defines a free slot by its P2 alone; this also requires P1 == Null.
// Every Free call here clears both ports together and nothing ever
// writes P2 without also writing P1, so the two tests agree on every
// reachable heap state — the stricter check is redundant, not divergent
// in practice, and catches a half-written slot if that invariant is ever
// broken. Slot 0 is never reported free, reserved for the root wire
// regardless of its contents (I4).
func (h *Heap) IsFree(loc uint32) bool {
	if loc == 0 {
		return false
	}
	return h.GetP1(loc) == ptr.Null && h.GetP2(loc) == ptr.Null
}

// Alloc returns a fresh, free slot index. The cursor advances
// monotonically through unused slots until the heap is first exhausted;
// thereafter it probes forward (modulo Len) for a free slot, per spec.md
// §3.2 and the allocator-policy note in §9. The two paths are mutually
// exclusive for the heap's whole lifetime, latched by exhausted: once the
// cursor has run off the end, every later Alloc probes, even if freed
// slots later push next back below Len. Returns ErrExhausted if no free
// slot can be found after a full probe, per §7.
func (h *Heap) Alloc() (uint32, error) {
	n := h.Len()
	if !h.exhausted {
		if h.next < n {
			loc := h.next
			h.next++
			return loc, nil
		}
		h.exhausted = true
	}
	for i := uint32(1); i < n; i++ {
		loc := (h.next + i) % n
		if h.IsFree(loc) {
			h.next = loc
			return loc, nil
		}
	}
	return 0, ErrExhausted
}

// Free marks loc reclaimable by writing Null to both of its ports.
func (h *Heap) Free(loc uint32) {
	h.SetP1(loc, ptr.Null)
	h.SetP2(loc, ptr.Null)
}
