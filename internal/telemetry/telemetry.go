// Package telemetry holds the runtime's rewrite counters. It is internal
// because it is pure bookkeeping consumed only by package net and its own
// tests, never by the external collaborators that import the rest of
// this module (spec.md §1).
package telemetry

// Counters tracks how many times each rewrite rule fired. The spec
// frames these as "performance telemetry, not semantics" (spec.md §9):
// two conforming implementations may disagree on exact tallies by an
// O(1) factor without either being wrong, so long as they agree on the
// reduced net's final shape.
type Counters struct {
	Anni uint64 // annihilation
	Comm uint64 // commutation (comm, pass, copy all bump this one)
	Eras uint64 // erasure (era1, era2, and skip-skip meetings)
	Dref uint64 // dereference (call)
	Oper uint64 // numeric/match operation (op2n, op1n, mtch)
}

// Total sums the five counters in the fixed order spec.md §6.1 and
// SPEC_FULL.md §4 specify: anni + comm + eras + dref + oper.
func (c Counters) Total() uint64 {
	return c.Anni + c.Comm + c.Eras + c.Dref + c.Oper
}
