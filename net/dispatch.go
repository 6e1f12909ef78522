package net

import (
	"fmt"

	"redex/book"
	"redex/ptr"
)

// interact classifies one active pair by its tag combination and fires
// the one rewrite rule the dispatch table of spec.md §4.3 assigns it.
// Link guarantees a pair only reaches here if both endpoints are
// primary and not both skip (§4.1), so every branch below is either a
// defined cell of that table or, for combinations the table leaves
// blank because no rule ever produces them, a fatal assertion rather
// than a silent no-op (spec.md §7).
func (n *Net) interact(bk *book.Book, a, b ptr.Ptr) error {
	// A REF meets call only when its partner is a non-skip primary (an
	// op/mat/ctr node); REF against another skip (ERA, NUM, or REF
	// itself) is just the generic skip-skip erasure (§4.3's blank REF
	// cells), though Link already filters that case out before it would
	// ever reach here.
	if a.Tag() == ptr.Ref && !b.IsSkip() {
		return n.call(bk, a, b)
	}
	if b.Tag() == ptr.Ref && !a.IsSkip() {
		return n.call(bk, b, a)
	}

	switch {
	case a.IsCtr() && b.IsCtr():
		if a.Label() == b.Label() {
			n.anni(a, b)
		} else {
			return n.comm(a, b)
		}
	case a.IsCtr() && b.Tag() == ptr.Era:
		n.era2(a)
	case a.Tag() == ptr.Era && b.IsCtr():
		n.era2(b)
	case a.IsCtr() && b.Tag() == ptr.Num:
		n.copy(a, b)
	case a.Tag() == ptr.Num && b.IsCtr():
		n.copy(b, a)
	case a.IsCtr() && b.Tag() == ptr.Op2:
		return n.comm(a, b)
	case a.Tag() == ptr.Op2 && b.IsCtr():
		return n.comm(b, a)
	case a.IsCtr() && b.Tag() == ptr.Op1:
		return n.pass(b, a)
	case a.Tag() == ptr.Op1 && b.IsCtr():
		return n.pass(a, b)
	case a.IsCtr() && b.Tag() == ptr.Mat:
		return n.comm(a, b)
	case a.Tag() == ptr.Mat && b.IsCtr():
		return n.comm(b, a)

	case a.Tag() == ptr.Era && b.Tag() == ptr.Era:
		n.stats.Eras++
	case a.Tag() == ptr.Era && b.Tag() == ptr.Num:
		n.stats.Eras++
	case a.Tag() == ptr.Num && b.Tag() == ptr.Era:
		n.stats.Eras++
	case a.Tag() == ptr.Num && b.Tag() == ptr.Num:
		n.stats.Eras++
	case a.IsSkip() && b.IsSkip():
		// Covers REF against another skip (ERA, NUM, or REF itself),
		// which Link's own both-skip filter already keeps out of the
		// queue; kept here only so the table's blank REF cells have a
		// defined, non-panicking arm if ever reached directly.
		n.stats.Eras++

	case a.Tag() == ptr.Era && b.Tag() == ptr.Op2:
		n.era2(b)
	case a.Tag() == ptr.Op2 && b.Tag() == ptr.Era:
		n.era2(a)
	case a.Tag() == ptr.Era && b.Tag() == ptr.Op1:
		n.era1(b)
	case a.Tag() == ptr.Op1 && b.Tag() == ptr.Era:
		n.era1(a)
	case a.Tag() == ptr.Era && b.Tag() == ptr.Mat:
		n.era2(b)
	case a.Tag() == ptr.Mat && b.Tag() == ptr.Era:
		n.era2(a)

	case a.Tag() == ptr.Num && b.Tag() == ptr.Op2:
		n.op2n(b, a)
	case a.Tag() == ptr.Op2 && b.Tag() == ptr.Num:
		n.op2n(a, b)
	case a.Tag() == ptr.Num && b.Tag() == ptr.Op1:
		n.op1n(b, a)
	case a.Tag() == ptr.Op1 && b.Tag() == ptr.Num:
		n.op1n(a, b)
	case a.Tag() == ptr.Num && b.Tag() == ptr.Mat:
		return n.mtch(b, a)
	case a.Tag() == ptr.Mat && b.Tag() == ptr.Num:
		return n.mtch(a, b)

	default:
		panic(fmt.Sprintf("net: unreachable tag pair (%v, %v)", a.Tag(), b.Tag()))
	}
	return nil
}
