// Package reqdraft is the root of the requisition drafting consistency
// engine: the client-side state machinery behind a multi-step procurement
// requisition form.
//
// The engine is assembled from small packages, leaf first:
//
//   - catalog resolves a variable backend catalog surface by probing ordered
//     candidate endpoints and normalizing heterogeneous response shapes
//   - cascade keeps dependent option sets consistent under rapid parent
//     changes using per-key request tokens (last-issued-wins)
//   - draft holds the in-memory header and line-item ledger with typed
//     field validation
//   - quote binds uploaded PDF quotes to saved line items under eligibility
//     and exclusivity invariants
//   - numbering computes the soft, display-only provisional requisition
//     number
//   - wizard owns the Header -> Items -> Review state machine and gates
//     every transition on the invariants above
//
// This root package carries the shared business-error surface: components
// return sentinel errors from the constants package, and ValidateBusinessError
// converts them into user-facing Response values at the controller boundary.
package reqdraft
