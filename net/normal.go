package net

import (
	"redex/book"
	"redex/ptr"
)

// expand forces whnf at dir, a variable pointer naming the wire slot to
// inspect: if the wire currently targets a constructor, both of that
// constructor's aux ports are expanded in turn; if it targets a
// reference, the reference is dereferenced in place, overwriting dir's
// slot with whatever the definition (or its native hook) produces
// (spec.md §4.4 step 1).
func (n *Net) expand(bk *book.Book, dir ptr.Ptr) error {
	target := n.heap.Get(dir.Val(), dir.Port())
	switch {
	case target.IsCtr():
		if err := n.expand(bk, ptr.New(ptr.Vr1, target.Val())); err != nil {
			return err
		}
		return n.expand(bk, ptr.New(ptr.Vr2, target.Val()))
	case target.Tag() == ptr.Ref:
		return n.call(bk, target, dir)
	default:
		return nil
	}
}

// drain repeatedly swaps out the redex queue and interacts every pair
// in it, since interacting a pair may enqueue fresh ones; it stops once
// a swap finds nothing left to process (spec.md §4.4 step 2).
func (n *Net) drain(bk *book.Book) error {
	for len(n.rdex) > 0 {
		batch := n.rdex
		n.rdex = nil
		for _, pr := range batch {
			if err := n.interact(bk, pr.P1, pr.P2); err != nil {
				return err
			}
		}
	}
	return nil
}

// Normal reduces the net to normal form: it alternates forcing whnf
// from the root and draining the redex queue until a full round leaves
// the rewrite count unchanged (spec.md §4.4, §6.1).
func (n *Net) Normal(bk *book.Book) error {
	for {
		before := n.stats.Total()

		if err := n.expand(bk, ptr.Root); err != nil {
			return err
		}
		if err := n.drain(bk); err != nil {
			return err
		}

		if n.stats.Total() == before {
			return nil
		}
	}
}
