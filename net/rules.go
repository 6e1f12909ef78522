package net

import (
	"redex/alu"
	"redex/book"
	"redex/ptr"
)

// anni annihilates two same-label constructors: each pair of
// like-numbered aux ports is linked straight through, and both slots
// are freed (spec.md §4.2).
func (n *Net) anni(a, b ptr.Ptr) {
	a1 := n.heap.Get(a.Val(), 0)
	b1 := n.heap.Get(b.Val(), 0)
	a2 := n.heap.Get(a.Val(), 1)
	b2 := n.heap.Get(b.Val(), 1)
	n.Link(a1, b1)
	n.Link(a2, b2)
	n.heap.Free(a.Val())
	n.heap.Free(b.Val())
	n.stats.Anni++
}

// comm commutes two different-label primaries: it allocates four fresh
// slots forming a 2x2 mesh, so that each of a's two outgoing wires now
// carries a copy of b's label and each of b's carries a copy of a's
// (spec.md §4.2).
func (n *Net) comm(a, b ptr.Ptr) error {
	a1 := n.heap.Get(a.Val(), 0)
	a2 := n.heap.Get(a.Val(), 1)
	b1 := n.heap.Get(b.Val(), 0)
	b2 := n.heap.Get(b.Val(), 1)

	loc, err := n.allocN(4)
	if err != nil {
		return err
	}
	loc0, loc1, loc2, loc3 := loc[0], loc[1], loc[2], loc[3]

	n.connect(loc0, 0, loc2, 0)
	n.connect(loc0, 1, loc3, 0)
	n.connect(loc1, 0, loc2, 1)
	n.connect(loc1, 1, loc3, 1)

	n.Link(a1, ptr.New(b.Tag(), loc0))
	n.Link(a2, ptr.New(b.Tag(), loc1))
	n.Link(b1, ptr.New(a.Tag(), loc2))
	n.Link(b2, ptr.New(a.Tag(), loc3))

	n.heap.Free(a.Val())
	n.heap.Free(b.Val())
	n.stats.Comm++
	return nil
}

// pass commutes a one-operand op node (op1) with a two-aux primary
// (ctr): the op1's captured operand is an atom, already freely
// shareable, so only three slots are needed: one op1 copy per branch of
// the ctr, plus one fresh ctr that reassembles their two results back
// into op1's original result wire (spec.md §4.2).
func (n *Net) pass(op1, ctr ptr.Ptr) error {
	captured := n.heap.Get(op1.Val(), 0)
	result := n.heap.Get(op1.Val(), 1)
	c1 := n.heap.Get(ctr.Val(), 0)
	c2 := n.heap.Get(ctr.Val(), 1)

	loc, err := n.allocN(3)
	if err != nil {
		return err
	}
	loc0, loc1, loc2 := loc[0], loc[1], loc[2]

	n.heap.SetP1(loc0, captured)
	n.heap.SetP1(loc1, captured)
	n.connect(loc0, 1, loc2, 0)
	n.connect(loc1, 1, loc2, 1)

	n.Link(c1, ptr.New(ptr.Op1, loc0))
	n.Link(c2, ptr.New(ptr.Op1, loc1))
	n.Link(result, ptr.New(ctr.Tag(), loc2))

	n.heap.Free(op1.Val())
	n.heap.Free(ctr.Val())
	n.stats.Comm++
	return nil
}

// copy duplicates a number across a constructor's two aux ports: a
// number is a skip atom with no heap slot, so duplication just links
// both of the constructor's aux ports to the same number pointer, then
// frees the constructor's slot (spec.md §4.2).
func (n *Net) copy(ctr, num ptr.Ptr) {
	c1 := n.heap.Get(ctr.Val(), 0)
	c2 := n.heap.Get(ctr.Val(), 1)
	n.Link(c1, num)
	n.Link(c2, num)
	n.heap.Free(ctr.Val())
	n.stats.Comm++
}

// era2 erases a two-aux primary: both aux ports are linked to the
// eraser atom and the slot is freed (spec.md §4.2).
func (n *Net) era2(a ptr.Ptr) {
	a1 := n.heap.Get(a.Val(), 0)
	a2 := n.heap.Get(a.Val(), 1)
	n.Link(a1, ptr.Eras)
	n.Link(a2, ptr.Eras)
	n.heap.Free(a.Val())
	n.stats.Eras++
}

// era1 erases an op1 node: its captured operand is an atom needing no
// propagation, so only its result port is linked to the eraser
// (spec.md §4.2).
func (n *Net) era1(a ptr.Ptr) {
	a2 := n.heap.Get(a.Val(), 1)
	n.Link(a2, ptr.Eras)
	n.heap.Free(a.Val())
	n.stats.Eras++
}

// op2n fires when a binary-op node meets a number at its main port. If
// the node's first aux port already holds a number (placed there by a
// template; an op2n conversion retags the node as op1 instead), the node's
// operator is taken from that resident number and the op applies
// immediately, its result linked to the node's second aux port and its
// slot freed. Otherwise this is the first operand to arrive: the node
// converts in place into an op1 holding it, awaiting the second operand
// at the wire its first aux port used to name (spec.md §4.2, §3.6).
func (n *Net) op2n(a, b ptr.Ptr) {
	p1 := n.heap.Get(a.Val(), 0)
	p2 := n.heap.Get(a.Val(), 1)

	if p1.Tag() == ptr.Num {
		result := alu.Apply(p1.NumOp(), p1.NumPayload(), b.NumPayload())
		n.heap.Free(a.Val())
		n.Link(ptr.NewNum(alu.Use, result), p2)
		n.stats.Oper++
		return
	}

	// p1 is itself a wire, possibly to another op2 further down a fold
	// chain; Linking rather than recursing here means the rest of the
	// chain only advances through later redex-queue entries, not this
	// call's stack.
	n.heap.SetP1(a.Val(), b)
	n.Link(ptr.New(ptr.Op1, a.Val()), p1)
	n.stats.Oper++
}

// op1n fires when an op1 node (a partially-applied binary op, or a
// directly-templated unary op) meets its second number: the operator
// and first operand come from the captured number at the node's first
// aux port, the incoming number supplies the second operand, and the
// result is linked to the node's second aux port (spec.md §4.2).
func (n *Net) op1n(a, b ptr.Ptr) {
	captured := n.heap.Get(a.Val(), 0)
	p2 := n.heap.Get(a.Val(), 1)
	result := alu.Apply(captured.NumOp(), captured.NumPayload(), b.NumPayload())
	n.heap.Free(a.Val())
	n.Link(ptr.NewNum(alu.Use, result), p2)
	n.stats.Oper++
}

// mtch fires when a match node meets a number: it builds a two-layer
// constructor tree isomorphic to the Scott zero/succ encoding of that
// number, wired to the match's cases pair (its first aux port) and
// output (its second aux port) (spec.md §4.2).
func (n *Net) mtch(a, num ptr.Ptr) error {
	cases := n.heap.Get(a.Val(), 0)
	out := n.heap.Get(a.Val(), 1)
	val := num.NumPayload()

	if val == 0 {
		loc, err := n.allocN(1)
		if err != nil {
			return err
		}
		n.heap.SetP1(loc[0], out)
		n.heap.SetP2(loc[0], ptr.Eras)
		n.heap.Free(a.Val())
		n.Link(cases, ptr.New(ptr.Ct0, loc[0]))
		n.stats.Oper++
		return nil
	}

	loc, err := n.allocN(2)
	if err != nil {
		return err
	}
	n.heap.SetP1(loc[0], ptr.Eras)
	n.heap.SetP2(loc[0], ptr.New(ptr.Ct0, loc[1]))
	n.heap.SetP1(loc[1], ptr.NewNum(alu.Use, val-1))
	n.heap.SetP2(loc[1], out)
	n.heap.Free(a.Val())
	n.Link(cases, ptr.New(ptr.Ct0, loc[0]))
	n.stats.Oper++
	return nil
}

// call dereferences ref, optionally deferring to the book's native
// hook first (spec.md §4.2, §6.3). If the hook declines and the
// definition is empty, the reference just links to its partner as-is:
// there is no error, and no template to instantiate (spec.md §3.4).
// Otherwise the template's internal slots are relocated onto freshly
// allocated heap locations, its internal redexes are queued, and its
// root is linked to par.
func (n *Net) call(bk *book.Book, ref, par ptr.Ptr) error {
	id := book.Mask(ref.Val())
	if bk.Hook(n, bk, ref, par) {
		return nil
	}

	def := bk.Get(id)
	if def.Empty() {
		n.Link(ref, par)
		n.stats.Dref++
		return nil
	}

	k := len(def.Node)
	reloc := make([]uint32, k)
	for i := 1; i < k; i++ {
		loc, err := n.heap.Alloc()
		if err != nil {
			return err
		}
		reloc[i] = loc
	}

	// Local index 0 is the template's sentinel root position: def.Node[0]
	// is not a real node, only its P2 is meaningful (the template's
	// exposed root pointer), and reloc[0] is never allocated. Any pointer
	// anywhere in the template — node ports or redex pairs — naming local
	// index 0 means "this wire connects to whatever par the caller
	// supplies", so it relocates to par itself, not to a fresh heap slot.
	relocate := func(p ptr.Ptr) ptr.Ptr {
		if !p.HasLoc() {
			return p
		}
		if p.Val() == 0 {
			return par
		}
		return ptr.New(p.Tag(), reloc[p.Val()])
	}

	for i := 1; i < k; i++ {
		n.heap.SetP1(reloc[i], relocate(def.Node[i].P1))
		n.heap.SetP2(reloc[i], relocate(def.Node[i].P2))
	}
	for _, rdx := range def.Rdex {
		n.Link(relocate(rdx.P1), relocate(rdx.P2))
	}

	root := relocate(def.Node[0].P2)
	n.Link(root, par)
	n.stats.Dref++
	return nil
}

// allocN allocates k fresh heap slots and returns their locations.
func (n *Net) allocN(k int) ([]uint32, error) {
	locs := make([]uint32, k)
	for i := range locs {
		loc, err := n.heap.Alloc()
		if err != nil {
			return nil, err
		}
		locs[i] = loc
	}
	return locs, nil
}
