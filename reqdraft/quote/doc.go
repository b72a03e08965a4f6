// Package quote binds uploaded PDF quote documents to saved line items.
//
// Two invariants hold at all times: a quote may only reference items that
// carry a server identity, and a given server identity appears in at most
// one quote (replacing a quote requires deleting the old one first).
//
// The binder never trusts its own optimistic state across mutations: every
// commit and every removal is followed by a full resync from the external
// quote store, so the local view always converges to server truth even when
// a delete fails halfway.
package quote
