// Package net implements the reducible graph: the heap-backed agent net,
// its redex queue, the ten rewrite rules, and the normaliser loop that
// drives them to completion. Structurally this is the teacher's
// fetch-decode-execute loop (internal/emulator/emulator.go) retargeted
// from a CPU instruction stream to an interaction-net redex queue, with
// the opcode dispatch table (internal/cpu/opcodes.go) retargeted from
// CPU opcodes to the tag-pair rewrite table (spec.md §4.3).
package net

import (
	"redex/book"
	"redex/heap"
	"redex/internal/telemetry"
	"redex/ptr"
)

// Net is one reducible interaction net: a heap of node slots, a queue of
// pending active pairs, and the rewrite counters accumulated so far
// (spec.md §3.2 component D).
type Net struct {
	heap  *heap.Heap
	rdex  []book.PtrPair
	stats telemetry.Counters
}

// New returns a Net whose heap has the given slot capacity. Slot 0 is
// reserved for the root wire and starts at ptr.Null (spec.md §3.2, I4).
func New(size uint32) *Net {
	return &Net{heap: heap.New(size)}
}

// Boot writes REF(rootID) into the root wire, seeding the net with the
// single dereference that Normal will unfold (spec.md §6.1).
func (n *Net) Boot(rootID uint32) {
	n.Link(ptr.Root, ptr.New(ptr.Ref, rootID))
}

// Rewrites returns the total number of rewrite steps performed so far:
// the five counters summed in anni + comm + eras + dref + oper order
// (spec.md §6.1).
func (n *Net) Rewrites() uint64 {
	return n.stats.Total()
}

// Heap exposes the underlying heap for callers (codecs, GPU exporters,
// debuggers) that need to walk the reduced graph directly. The heap
// itself enforces no invariants beyond storage, so sharing it read-write
// is safe: every mutation a caller could perform is one Link could also
// perform.
func (n *Net) Heap() *heap.Heap {
	return n.heap
}

func (n *Net) pushRedex(a, b ptr.Ptr) {
	if !a.IsPri() || !b.IsPri() {
		panic("net: pushRedex called with a non-primary endpoint")
	}
	n.rdex = append(n.rdex, book.PtrPair{P1: a, P2: b})
}
