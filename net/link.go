package net

import "redex/ptr"

// wireVar builds the variable pointer that names (loc, port): the
// convention every wire in the heap uses to point at its partner
// (spec.md §3.2, I2).
func wireVar(loc uint32, port uint8) ptr.Ptr {
	if port == 0 {
		return ptr.New(ptr.Vr1, loc)
	}
	return ptr.New(ptr.Vr2, loc)
}

// connect wires (locX, portX) to (locY, portY): each end is written the
// variable pointer naming the other, satisfying I2 by construction. Used
// by the rewrite rules that assemble fresh node meshes (comm, pass,
// mtch).
func (n *Net) connect(locX uint32, portX uint8, locY uint32, portY uint8) {
	n.heap.Set(locX, portX, wireVar(locY, portY))
	n.heap.Set(locY, portY, wireVar(locX, portX))
}

// Link is the single wiring primitive every rule ends with (spec.md
// §4.1): if both endpoints are primary, either drop the meeting as a
// free erasure (both skip) or enqueue it as a new active pair;
// otherwise each variable endpoint has its partner written into the
// heap slot it names. A pointer can be at once a Link argument and a
// variable target of the other argument, so both variable checks below
// are unconditional, not mutually exclusive.
func (n *Net) Link(a, b ptr.Ptr) {
	if a.IsPri() && b.IsPri() {
		if a.IsSkip() && b.IsSkip() {
			n.stats.Eras++
			return
		}
		n.pushRedex(a, b)
		return
	}
	if a.IsVar() {
		n.heap.Set(a.Val(), a.Port(), b)
	}
	if b.IsVar() {
		n.heap.Set(b.Val(), b.Port(), a)
	}
}
