// Package wizard drives the three-step requisition drafting flow:
// Header, Items, Review.
//
// The controller owns step transitions and delegates everything else: the
// header and ledger hold draft state, the cascade cache serves catalog
// options, the numbering reserver proposes the requisition number, and the
// quote binder (attached after the draft is first persisted) manages quote
// documents. Forward transitions are gated; backward transitions always
// succeed and lose nothing.
package wizard
