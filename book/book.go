// Package book implements the immutable table of closed net templates
// keyed by a numeric definition id, and the native-call hook contract
// that lets an external collaborator short-circuit a dereference with a
// specialised implementation (spec.md §3.4, §6.2, §6.3).
package book

import "redex/ptr"

// idBits is the width of a definition id; ids are masked to this range
// on every lookup (spec.md §4.2 call: "Look up ... masked to 24 bits").
const idBits = 24

// idMask masks a raw id down to the book's addressable range.
const idMask = (1 << idBits) - 1

// PtrPair is an ordered pair of pointers: one heap node's two ports, or
// one redex's two endpoints, expressed with template-local indices
// before relocation (spec.md §3.4).
type PtrPair struct {
	P1 ptr.Ptr
	P2 ptr.Ptr
}

// Def is a closed net template: a sequence of node-pair slots (position 0's
// P2 is the template's root output) and a sequence of redex pairs, both
// addressed with indices local to the template (spec.md §3.4, §6.2).
type Def struct {
	Rdex []PtrPair
	Node []PtrPair
}

// Empty reports whether d has no definition body. An empty definition
// means "no such id" (spec.md §3.4).
func (d Def) Empty() bool {
	return len(d.Node) == 0
}

// NetView is the minimal surface a NativeHook needs to intercept a
// dereference: the ability to complete the wire between the reference
// and its partner. Net (in package net) implements this interface; book
// does not import net, to keep the hook contract from creating an import
// cycle between the two packages that both need it (book is consulted by
// net.call, and the hook's net-view argument is a *net.Net).
type NetView interface {
	// Link wires two endpoints together exactly as spec.md §4.1 describes
	// for the generic link primitive.
	Link(a, b ptr.Ptr)
}

// NativeHook may short-circuit a dereference with a specialised
// implementation. Returning true signals "I handled the dereference";
// returning false forces the generic template expansion (spec.md §6.3).
// It must be side-effect-free with respect to any net it is not passed
// (spec.md §5).
type NativeHook func(view NetView, book *Book, ref, par ptr.Ptr) bool

// DefaultHook never intercepts a dereference (spec.md §6.3).
func DefaultHook(view NetView, book *Book, ref, par ptr.Ptr) bool {
	return false
}

// Book is the read-only-after-construction table of definitions, plus the
// optional native hook consulted on every dereference (spec.md §3.4). The
// spec calls for "capacity ≥ 2^24 definition slots, all empty" as the
// conceptual contract; this implementation realises that contract with a
// sparse map rather than a literal 2^24-entry array (each entry would
// carry two slice headers, making a dense array impractical), since the
// only externally observable behaviour the spec requires is that every
// id in [0, 2^24) resolves to either an installed Def or an Empty one.
type Book struct {
	defs map[uint32]Def
	Hook NativeHook
}

// New returns a Book with no definitions installed and the default
// (always-false) native hook.
func New() *Book {
	return &Book{
		defs: make(map[uint32]Def),
		Hook: DefaultHook,
	}
}

// Def installs def under id, masked to the book's 24-bit id space.
func (b *Book) Def(id uint32, def Def) {
	b.defs[id&idMask] = def
}

// Get returns the definition for id, masked to the book's 24-bit id
// space. An id with nothing installed returns the zero Def, which is
// Empty.
func (b *Book) Get(id uint32) Def {
	return b.defs[id&idMask]
}

// Mask returns id restricted to the book's addressable 24-bit range, the
// same masking Get and Def apply internally. Exposed so callers (notably
// net.call) can mask a Ref's value once and reuse it.
func Mask(id uint32) uint32 {
	return id & idMask
}
